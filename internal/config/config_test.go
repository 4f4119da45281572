package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if conf.BookingsKey != "zenith-bookings" {
		t.Errorf("bookings key = %q", conf.BookingsKey)
	}

	if conf.SubmitDelay != 2*time.Second {
		t.Errorf("submit delay = %v", conf.SubmitDelay)
	}

	if conf.AuthDelay != 1500*time.Millisecond {
		t.Errorf("auth delay = %v", conf.AuthDelay)
	}

	if conf.StorageDriver != "sqlite" || conf.IDGenerator != "random" {
		t.Errorf("unexpected defaults %+v", conf)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZENITH_HTTP_PORT", "9000")
	t.Setenv("ZENITH_STORAGE_DRIVER", "memory")
	t.Setenv("ZENITH_SUBMIT_DELAY", "10ms")

	conf, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if conf.HTTPPort != "9000" {
		t.Errorf("port = %q", conf.HTTPPort)
	}

	if conf.StorageDriver != "memory" {
		t.Errorf("driver = %q", conf.StorageDriver)
	}

	if conf.SubmitDelay != 10*time.Millisecond {
		t.Errorf("submit delay = %v", conf.SubmitDelay)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "STORAGE_DRIVER: redis\nREDIS_ADDR: cache:6379\nID_GENERATOR: sequential\n"

	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if conf.StorageDriver != "redis" || conf.RedisAddr != "cache:6379" || conf.IDGenerator != "sequential" {
		t.Errorf("file values not applied: %+v", conf)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ZENITH_STORAGE_DRIVER", "localstorage")

	_, err := Load("")
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
