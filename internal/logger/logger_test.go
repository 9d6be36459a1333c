package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"infinite-tower/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.log")
	log := New(config.LoggingConfig{
		Level:       "INFO",
		FileEnabled: true,
		FilePath:    path,
		FileFormat:  "text",
	})

	log.Info("floor generated", "floor", 3, "rooms", 9)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "floor generated") {
		t.Fatalf("log file missing message: %q", data)
	}
	if !strings.Contains(string(data), "rooms=9") {
		t.Fatalf("log file missing attribute: %q", data)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.log")
	log := New(config.LoggingConfig{
		Level:       "ERROR",
		FileEnabled: true,
		FilePath:    path,
		FileFormat:  "text",
	})

	log.Info("quiet tick")
	log.Error("spawn failed")

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "quiet tick") {
		t.Fatal("INFO record leaked through ERROR level")
	}
	if !strings.Contains(string(data), "spawn failed") {
		t.Fatalf("ERROR record missing: %q", data)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("garbage"); got.String() != "INFO" {
		t.Fatalf("parseLevel fell through to %v", got)
	}
}
