package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadPoolsFromEnv(t *testing.T) {
	t.Setenv("FEESCOPE_POOL_TYPE", "stable, omnipool,,")
	t.Setenv("FEESCOPE_SNAPSHOT", "/tmp/snap.json")

	cfg, err := LoadPools("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PoolsConfig{
		Snapshot:  "/tmp/snap.json",
		PoolTypes: []string{"stable", "omnipool"},
		LogLevel:  "info",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("config mismatch: %+v != %+v", cfg, want)
	}
}

func TestLoadPoolsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feescope.yaml")
	data := "snapshot: ./snap.json\npool-type:\n  - xyk\n  - lbp\nlog-level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadPools(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PoolsConfig{
		Snapshot:  "./snap.json",
		PoolTypes: []string{"xyk", "lbp"},
		LogLevel:  "debug",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("config mismatch: %+v != %+v", cfg, want)
	}
}

func TestLoadFeesFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FEESCOPE_ASSET_IN", "0")
	t.Setenv("FEESCOPE_PG_DSN", "postgres://localhost/fees")

	flags := pflag.NewFlagSet("fees", pflag.ContinueOnError)
	flags.String("asset-in", "", "")
	flags.String("pool-type", "", "")
	if err := flags.Parse([]string{"--asset-in", "5", "--pool-type", "omnipool"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadFees("", flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AssetIn != "5" || cfg.PoolType != "omnipool" {
		t.Fatalf("flag values not applied: %+v", cfg)
	}
	if cfg.PGDSN != "postgres://localhost/fees" {
		t.Fatalf("env value not applied: %+v", cfg)
	}
	if cfg.Snapshot != "./data/snapshot.json" {
		t.Fatalf("default snapshot mismatch: %s", cfg.Snapshot)
	}
}

func TestLoadWatchDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	flags.StringSlice("quote", nil, "")
	if err := flags.Parse([]string{"--quote", "xyk:a:0:5,stable:b:10:22"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadWatch("", flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Quotes, []string{"xyk:a:0:5", "stable:b:10:22"}) {
		t.Fatalf("quotes mismatch: %v", cfg.Quotes)
	}
	if cfg.Interval != 12*time.Second || cfg.RetryBackoff != 500*time.Millisecond || cfg.MaxRetries != 3 {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
	if cfg.Once || cfg.StateName != "watch" {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := LoadPools(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
