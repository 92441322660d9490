// Interactive arm host
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"armhost/pkg/api"
	"armhost/pkg/arm"
	"armhost/pkg/command"
	"armhost/pkg/errors"
	"armhost/pkg/history"
	"armhost/pkg/log"
	"armhost/pkg/metrics"
	"armhost/pkg/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the arm host with its command loop and status API",
	Long: `Run starts a full arm session: an interactive command loop on stdin,
the HTTP/WebSocket status API, the metrics endpoint, and the move history
store. Commands:

  move X,Y    drive the arm to the target (goto and bare "X,Y" also work)
  status      print session state
  quit        shut down (exit also works)`,
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	logger := log.GetLogger("host")

	fc, err := loadFileConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(fc.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	armMetrics := metrics.GlobalArmMetrics()

	sess, err := session.New(fc.Arm, fc.Start, session.Options{
		FrameInterval: fc.FrameInterval,
		History:       store,
		Metrics:       armMetrics,
	})
	if err != nil {
		return err
	}

	apiServer := api.New(api.Config{Addr: fc.ListenAddr, Arm: sess})
	sess.AddSink(apiServer)
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.WithError(err).Error("status API server failed")
		}
	}()

	metricsServer := metrics.NewServer(armMetrics.Registry(), fc.MetricsAddr)
	go func() {
		if err := metricsServer.Start(); err != nil {
			logger.WithError(err).Error("metrics server failed")
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received %s, shutting down", sig)
		cancel()
	}()

	logger.Info("session %s started at (%g, %g)", sess.ID(), fc.Start.X, fc.Start.Y)
	fmt.Printf("armhost %s  (links %g/%g, reach %g..%g)\n", Version,
		fc.Arm.L1, fc.Arm.L2, fc.Arm.MinReach(), fc.Arm.MaxReach())
	fmt.Println("commands: move X,Y | status | quit")

	commandLoop(ctx, cancel, sess)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(); err != nil {
		logger.WithError(err).Warn("status API shutdown")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("metrics shutdown")
	}
	return nil
}

// commandLoop reads commands from stdin until quit, EOF, or cancellation.
func commandLoop(ctx context.Context, cancel context.CancelFunc, sess *session.Session) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				cancel()
				return
			}
			if line == "" {
				continue
			}
			cmd, err := command.Parse(line)
			if err != nil {
				fmt.Printf("error: %s\n", err)
				continue
			}
			switch cmd.Kind {
			case command.KindMove:
				runMove(ctx, sess, cmd.Target)
			case command.KindStatus:
				printStatus(sess.Status())
			case command.KindQuit:
				cancel()
				return
			}
		}
	}
}

func runMove(ctx context.Context, sess *session.Session, target arm.Point) {
	if err := sess.Move(ctx, target); err != nil {
		if errors.IsRejection(err) {
			fmt.Printf("rejected: %s\n", err)
		} else {
			fmt.Printf("error: %s\n", err)
		}
		return
	}
	pos := sess.Current()
	fmt.Printf("at (%g, %g)\n", pos.X, pos.Y)
}

func printStatus(status map[string]interface{}) {
	keys := make([]string, 0, len(status))
	for k := range status {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-18s %v\n", k, status[k])
	}
}
