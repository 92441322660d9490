package config

import (
	"testing"

	"armhost/pkg/errors"
)

func TestLoadString(t *testing.T) {
	data := `
[arm]
link1_length: 200
link2_length: 150
left_handed: true

[session]
start_x: 150
start_y: 150
`

	cfg, err := LoadString(data)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	if !cfg.HasSection("arm") {
		t.Error("expected [arm] section to exist")
	}
	if !cfg.HasSection("session") {
		t.Error("expected [session] section to exist")
	}
	if cfg.HasSection("nonexistent") {
		t.Error("expected [nonexistent] section to not exist")
	}

	sec, err := cfg.GetSection("arm")
	if err != nil {
		t.Fatalf("GetSection(arm) failed: %v", err)
	}
	if sec.GetName() != "arm" {
		t.Errorf("expected name 'arm', got '%s'", sec.GetName())
	}

	l1, err := sec.GetFloat("link1_length")
	if err != nil {
		t.Fatalf("GetFloat(link1_length) failed: %v", err)
	}
	if l1 != 200.0 {
		t.Errorf("expected 200.0, got %f", l1)
	}

	left, err := sec.GetBool("left_handed")
	if err != nil {
		t.Fatalf("GetBool(left_handed) failed: %v", err)
	}
	if !left {
		t.Error("expected left_handed true")
	}
}

func TestSectionGetters(t *testing.T) {
	data := `
[test]
string_val: hello  # trailing comment
int_val: 42
float_val: 3.14
bool_yes: yes
bool_off: off
`

	cfg, err := LoadString(data)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	sec, _ := cfg.GetSection("test")

	if v, _ := sec.Get("string_val"); v != "hello" {
		t.Errorf("expected 'hello', got '%s'", v)
	}
	if v, _ := sec.Get("missing", "fallback"); v != "fallback" {
		t.Errorf("expected fallback, got '%s'", v)
	}
	if _, err := sec.Get("missing"); !errors.Is(err, errors.ErrConfigOption) {
		t.Errorf("expected CONFIG_OPTION error, got %v", err)
	}

	if v, _ := sec.GetInt("int_val"); v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if v, _ := sec.GetFloat("float_val"); v != 3.14 {
		t.Errorf("expected 3.14, got %f", v)
	}
	if v, _ := sec.GetBool("bool_yes"); !v {
		t.Error("expected yes -> true")
	}
	if v, _ := sec.GetBool("bool_off"); v {
		t.Error("expected off -> false")
	}
	if _, err := sec.GetFloat("string_val"); !errors.Is(err, errors.ErrConfigType) {
		t.Errorf("expected CONFIG_TYPE error, got %v", err)
	}
}

func TestMalformedConfig(t *testing.T) {
	cases := []string{
		"[arm]\nno separator here",
		"orphan_option: 1",
		"[]\n",
	}
	for _, data := range cases {
		if _, err := LoadString(data); err == nil {
			t.Errorf("expected parse error for %q", data)
		}
	}
}

func TestParseStringFull(t *testing.T) {
	data := `
[arm]
link1_length: 200
link2_length: 150
left_handed: false

[session]
start_x: 150
start_y: 150
frame_interval_ms: 25

[api]
listen: :8080

[history]
path: /tmp/test.db
`

	fc, err := ParseString(data)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if fc.Arm.L1 != 200 || fc.Arm.L2 != 150 {
		t.Errorf("unexpected arm config: %+v", fc.Arm)
	}
	if fc.Start.X != 150 || fc.Start.Y != 150 {
		t.Errorf("unexpected start: %+v", fc.Start)
	}
	if fc.FrameInterval.Milliseconds() != 25 {
		t.Errorf("unexpected frame interval: %v", fc.FrameInterval)
	}
	if fc.ListenAddr != ":8080" {
		t.Errorf("unexpected listen addr: %s", fc.ListenAddr)
	}
	if fc.MetricsAddr != DefaultMetricsAddr {
		t.Errorf("expected default metrics addr, got %s", fc.MetricsAddr)
	}
	if fc.HistoryPath != "/tmp/test.db" {
		t.Errorf("unexpected history path: %s", fc.HistoryPath)
	}
}

func TestParseStringDefaults(t *testing.T) {
	data := `
[arm]
link1_length: 120
link2_length: 100

[session]
start_x: 150
`

	fc, err := ParseString(data)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if fc.Arm.LeftHanded {
		t.Error("expected left_handed default false")
	}
	if fc.FrameInterval.Milliseconds() != DefaultFrameIntervalMS {
		t.Errorf("expected default frame interval, got %v", fc.FrameInterval)
	}
	if fc.ListenAddr != DefaultListenAddr {
		t.Errorf("expected default listen addr, got %s", fc.ListenAddr)
	}
}

func TestParseStringRejectsBadGeometry(t *testing.T) {
	_, err := ParseString("[arm]\nlink1_length: 0\nlink2_length: 150\n")
	if !errors.Is(err, errors.ErrInvalidLength) {
		t.Errorf("expected INVALID_LENGTH, got %v", err)
	}
}

func TestParseStringRejectsUnreachableStart(t *testing.T) {
	data := `
[arm]
link1_length: 200
link2_length: 150

[session]
start_x: 0
start_y: 0
`
	_, err := ParseString(data)
	if !errors.Is(err, errors.ErrConfigValidation) {
		t.Errorf("expected CONFIG_VALIDATION, got %v", err)
	}
}
