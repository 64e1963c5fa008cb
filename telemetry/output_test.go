package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/snake/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Methods on a nil manager are no-ops.
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Error(err)
	}
	if path, err := om.WriteTranscript(&SessionTranscript{}); path != "" || err != nil {
		t.Errorf("WriteTranscript = %q, %v", path, err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 2; i++ {
		if err := om.WriteWindow(WindowStats{WindowEndTick: int32(i * 600), Eats: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteSession(SessionStats{Session: 1, Cause: "self", FinalLength: 7}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEat(EatRecord{Session: 1, Tick: 30, Food: "food", Score: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		file   string
		lines  int
		header string
	}{
		{"windows.csv", 3, "window_end,sim_time,session"},
		{"sessions.csv", 2, "session,start_tick,end_tick,cause"},
		{"eats.csv", 2, "session,tick,x,y,food"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines) != tt.lines {
				t.Errorf("got %d lines, want %d:\n%s", len(lines), tt.lines, data)
			}
			if !strings.HasPrefix(lines[0], tt.header) {
				t.Errorf("header = %q, want prefix %q", lines[0], tt.header)
			}
		})
	}
}

func TestOutputManagerWritesConfigAndTranscript(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	st := NewSessionTranscript(4, 1, "self", 0, 10, buildSession(t, 1))
	path, err := om.WriteTranscript(st)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("transcript written to %s, want %s", path, dir)
	}
}
