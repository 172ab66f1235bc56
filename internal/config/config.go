package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FEESCOPE_SNAPSHOT.
const EnvPrefix = "FEESCOPE"

// PoolsConfig holds configuration for the pools command.
type PoolsConfig struct {
	Snapshot  string
	PoolTypes []string
	LogLevel  string
}

// FeesConfig holds configuration for the fees command.
type FeesConfig struct {
	Snapshot    string
	PoolType    string
	PoolAddress string
	AssetIn     string
	AssetOut    string
	BalanceIn   string
	BalanceOut  string
	Out         string
	PGDSN       string
	LogLevel    string
}

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Snapshot     string
	Quotes       []string
	Interval     time.Duration
	Once         bool
	Out          string
	PGDSN        string
	StateFile    string
	StateName    string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// LoadPools merges config file, environment variables, and flags into PoolsConfig.
func LoadPools(cfgFile string, flags *pflag.FlagSet) (PoolsConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"snapshot":  "./data/snapshot.json",
		"log-level": "info",
	})
	if err != nil {
		return PoolsConfig{}, err
	}

	cfg := PoolsConfig{
		Snapshot:  v.GetString("snapshot"),
		PoolTypes: getStringSlice(v, "pool-type"),
		LogLevel:  v.GetString("log-level"),
	}
	return cfg, nil
}

// LoadFees merges config file, environment variables, and flags into FeesConfig.
func LoadFees(cfgFile string, flags *pflag.FlagSet) (FeesConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"snapshot":  "./data/snapshot.json",
		"log-level": "info",
	})
	if err != nil {
		return FeesConfig{}, err
	}

	cfg := FeesConfig{
		Snapshot:    v.GetString("snapshot"),
		PoolType:    v.GetString("pool-type"),
		PoolAddress: v.GetString("pool-address"),
		AssetIn:     v.GetString("asset-in"),
		AssetOut:    v.GetString("asset-out"),
		BalanceIn:   v.GetString("balance-in"),
		BalanceOut:  v.GetString("balance-out"),
		Out:         v.GetString("out"),
		PGDSN:       v.GetString("pg-dsn"),
		LogLevel:    v.GetString("log-level"),
	}
	return cfg, nil
}

// LoadWatch merges config file, environment variables, and flags into WatchConfig.
func LoadWatch(cfgFile string, flags *pflag.FlagSet) (WatchConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"snapshot":      "./data/snapshot.json",
		"interval":      12 * time.Second,
		"out":           "./data/fee_quotes.jsonl",
		"state-file":    "./data/watch_state.json",
		"state-name":    "watch",
		"max-retries":   3,
		"retry-backoff": 500 * time.Millisecond,
		"log-level":     "info",
	})
	if err != nil {
		return WatchConfig{}, err
	}

	cfg := WatchConfig{
		Snapshot:     v.GetString("snapshot"),
		Quotes:       getStringSlice(v, "quote"),
		Interval:     v.GetDuration("interval"),
		Once:         v.GetBool("once"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		StateFile:    v.GetString("state-file"),
		StateName:    v.GetString("state-name"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}
	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
