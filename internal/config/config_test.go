package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ckacy01/entropia/feature"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
class = "Enfermo"
instances = 15
parallelism = 4

[session]
backend = "redis"
ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Class != "Enfermo" {
		t.Errorf("expected class Enfermo, got %s", cfg.Class)
	}
	if n, _ := cfg.InstanceCount(); n != 15 {
		t.Errorf("expected 15 instances, got %d", n)
	}
	if p, _ := cfg.ParallelismLimit(); p != 4 {
		t.Errorf("expected parallelism 4, got %d", p)
	}
	if cfg.Session.Backend != BackendRedis {
		t.Errorf("expected redis backend, got %s", cfg.Session.Backend)
	}
	if ttl, _ := cfg.SessionTTL(); ttl != time.Hour {
		t.Errorf("expected ttl of 1h, got %v", ttl)
	}
	if cfg.Server.Addr != ":8080" || cfg.Session.RedisAddr != "localhost:6379" {
		t.Errorf("expected undefined keys to keep their defaults, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"negative instances", "instances = -1"},
		{"empty class", `class = " "`},
		{"unknown backend", "[session]\nbackend = \"mongo\""},
		{"invalid ttl", "[session]\nttl = \"tomorrow\""},
		{"unknown codec", "[session]\ncodec = \"xml\""},
		{"negative parallelism", "parallelism = -2"},
		{"instances over the limit", "instances = 50\nmax_instances = 20"},
		{"zero max instances", "max_instances = 0"},
	}
	for _, tc := range testCases {
		_, err := Load(writeFile(t, t.TempDir(), tc.content))
		if !errors.Is(err, feature.ErrInvalidArgument) {
			t.Errorf("%s: expected invalid argument error, got %v", tc.name, err)
		}
	}
	if _, err := Load(writeFile(t, t.TempDir(), "instances = [")); err == nil {
		t.Errorf("expected error parsing malformed TOML")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	found, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find %s, got %v, %v", path, ok, err)
	}
	if found != path {
		t.Errorf("expected %s, got %s", path, found)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckInstanceCount(t *testing.T) {
	cfg := Default()
	cfg.MaxInstances = 20
	testCases := []struct {
		n     int
		valid bool
	}{
		{0, true},
		{5, true},
		{20, true},
		{21, false},
		{2000000000, false},
		{-1, false},
	}
	for _, tc := range testCases {
		err := cfg.CheckInstanceCount(tc.n)
		if tc.valid && err != nil {
			t.Errorf("%d instances: unexpected error: %v", tc.n, err)
		}
		if !tc.valid && !errors.Is(err, feature.ErrInvalidArgument) {
			t.Errorf("%d instances: expected invalid argument error, got %v", tc.n, err)
		}
	}
	if n, _ := Default().MaxInstanceCount(); n != DefaultMaxInstances {
		t.Errorf("expected default limit %d, got %d", DefaultMaxInstances, n)
	}
}
