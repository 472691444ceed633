package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
postgres:
  dsn: "postgres://localhost/attendance"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Telegram.Token != "123:abc" {
		t.Errorf("token: got %q", c.Telegram.Token)
	}
	if c.Attendance.DefaultMinimum != 75 || c.Attendance.TermClasses != 55 {
		t.Errorf("attendance defaults: got %+v", c.Attendance)
	}
	if c.Telegram.TimeoutSec != 60 || c.HTTP.Addr != ":8080" {
		t.Errorf("transport defaults: timeout=%d addr=%q", c.Telegram.TimeoutSec, c.HTTP.Addr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
attendance:
  default_minimum: 75
`)
	t.Setenv("APP_ATTENDANCE_DEFAULT_MINIMUM", "80")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Attendance.DefaultMinimum != 80 {
		t.Errorf("env override: got %d, want 80", c.Attendance.DefaultMinimum)
	}
}

func TestLoad_EnvOverride_KeyAbsentFromFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)
	t.Setenv("APP_POSTGRES_DSN", "postgres://env")
	t.Setenv("APP_METRICS_ENABLED", "true")
	t.Setenv("APP_ATTENDANCE_EXTENDED_DEFAULT", "true")
	t.Setenv("APP_APP_TIMEZONE", "Europe/Moscow")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Postgres.DSN != "postgres://env" {
		t.Errorf("dsn: got %q, want postgres://env", c.Postgres.DSN)
	}
	if !c.Metrics.Enabled {
		t.Error("metrics.enabled: got false, want true")
	}
	if !c.Attendance.ExtendedDefault {
		t.Error("attendance.extended_default: got false, want true")
	}
	if c.App.Timezone != "Europe/Moscow" {
		t.Errorf("timezone: got %q", c.App.Timezone)
	}
}

func TestConfig_Location(t *testing.T) {
	var c Config
	loc, err := c.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("empty timezone: got %v, %v; want UTC", loc, err)
	}

	c.App.Timezone = "Europe/Moscow"
	loc, err = c.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts := time.UnixMilli(1708455600000).In(loc)
	if got := ts.Format("15:04"); got != "22:00" {
		t.Errorf("moscow time: got %s, want 22:00", got)
	}

	c.App.Timezone = "Mars/Olympus"
	if _, err := c.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
