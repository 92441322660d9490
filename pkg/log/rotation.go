// Log file rotation support for armhost
//
// Provides automatic log file rotation based on size and backup count.
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// RotatingFileWriter implements io.Writer with automatic file rotation.
// When the current file exceeds MaxSize it is renamed to <name>.1, existing
// backups shift up, and backups beyond MaxBackups are removed.
type RotatingFileWriter struct {
	mu          sync.Mutex
	filename    string
	maxSize     int64
	maxBackups  int
	currentSize int64
	file        *os.File
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	// Filename is the path to the log file.
	Filename string

	// MaxSize is the maximum size in megabytes before rotation.
	// Default is 10 MB.
	MaxSize int

	// MaxBackups is the maximum number of old log files to retain.
	// Default is 5.
	MaxBackups int
}

// NewRotatingFileWriter creates a new rotating file writer.
func NewRotatingFileWriter(config RotationConfig) (*RotatingFileWriter, error) {
	if config.Filename == "" {
		return nil, fmt.Errorf("log: filename is required")
	}

	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := config.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}

	w := &RotatingFileWriter{
		filename:   config.Filename,
		maxSize:    int64(maxSize) * 1024 * 1024,
		maxBackups: maxBackups,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingFileWriter) open() error {
	f, err := os.OpenFile(w.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("log: open %s: %w", w.filename, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("log: stat %s: %w", w.filename, err)
	}
	w.file = f
	w.currentSize = info.Size()
	return nil
}

// Write implements io.Writer.
func (w *RotatingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentSize+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.currentSize += int64(n)
	return n, err
}

// Close closes the underlying file.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate shifts backups up one slot and reopens a fresh file.
func (w *RotatingFileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("log: close before rotate: %w", err)
	}

	// Drop backups at or beyond the retention limit, then shift the rest.
	for _, n := range w.backupNumbers() {
		name := fmt.Sprintf("%s.%d", w.filename, n)
		if n >= w.maxBackups {
			os.Remove(name)
			continue
		}
		os.Rename(name, fmt.Sprintf("%s.%d", w.filename, n+1))
	}

	if err := os.Rename(w.filename, w.filename+".1"); err != nil {
		return fmt.Errorf("log: rotate %s: %w", w.filename, err)
	}

	return w.open()
}

// backupNumbers returns the existing backup suffixes in descending order so
// renames never clobber a newer backup.
func (w *RotatingFileWriter) backupNumbers() []int {
	matches, err := os.ReadDir(filepath.Dir(w.filename))
	if err != nil {
		return nil
	}

	base := filepath.Base(w.filename) + "."
	var nums []int
	for _, entry := range matches {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, base))
		if err != nil || n < 1 {
			continue
		}
		nums = append(nums, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(nums)))
	return nums
}
