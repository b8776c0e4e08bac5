package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sacsbrainz/betconverter/internal/config"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string {
		return vars[k]
	}
}

func TestLoad(t *testing.T) {
	t.Run("no env, no config", func(t *testing.T) {
		opts, err := config.Load(nil, env(nil))
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", opts.ServerAddress)
		require.Equal(t, "", opts.EngineURL)
		require.Equal(t, 60*time.Second, opts.EngineTimeout)
		require.Equal(t, 10*time.Minute, opts.CacheTTL)
		require.Equal(t, "localhost:9090", opts.MetricsAddress)
		require.Equal(t, "info", opts.LogLevel)
		require.Equal(t, 10, opts.RateLimit)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
	})

	t.Run("flags", func(t *testing.T) {
		opts, err := config.Load([]string{"-a", ":9000", "-e", "http://engine:3000/convert", "-cache-ttl", "0", "-p"}, env(nil))
		require.NoError(t, err)
		require.Equal(t, ":9000", opts.ServerAddress)
		require.Equal(t, "http://engine:3000/convert", opts.EngineURL)
		require.Zero(t, opts.CacheTTL)
		require.True(t, opts.EnablePprof)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		opts, err := config.Load([]string{"-a", ":9000"}, env(map[string]string{
			"SERVER_ADDRESS": "127.0.0.1:9999",
			"ENGINE_URL":     "http://engine:3000",
			"ENGINE_TIMEOUT": "5s",
			"REDIS_ADDR":     "redis:6379",
			"ENABLE_HTTPS":   "true",
			"RATE_LIMIT":     "0",
			"LOG_LEVEL":      "debug",
		}))
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:9999", opts.ServerAddress)
		require.Equal(t, "http://engine:3000", opts.EngineURL)
		require.Equal(t, 5*time.Second, opts.EngineTimeout)
		require.Equal(t, "redis:6379", opts.RedisAddr)
		require.True(t, opts.EnableHTTPS)
		require.Zero(t, opts.RateLimit)
		require.Equal(t, "debug", opts.LogLevel)
	})

	t.Run("config file under flags and env", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "cfg.json")
		require.NoError(t, os.WriteFile(cfgPath, []byte(`{
			"server_address": "10.0.0.1:8081",
			"engine_url": "http://file-engine",
			"cache_ttl": "90s",
			"metrics_address": "",
			"enable_pprof": true,
			"cors_origin": "https://betconverter.example",
			"rate_limit": 3
		}`), 0o644))

		opts, err := config.Load([]string{"-e", "http://flag-engine"}, env(map[string]string{
			"CONFIG":     cfgPath,
			"RATE_LIMIT": "7",
		}))
		require.NoError(t, err)
		require.Equal(t, cfgPath, opts.Config)
		require.Equal(t, "10.0.0.1:8081", opts.ServerAddress)
		require.Equal(t, "http://flag-engine", opts.EngineURL)
		require.Equal(t, 90*time.Second, opts.CacheTTL)
		require.Equal(t, "", opts.MetricsAddress)
		require.True(t, opts.EnablePprof)
		require.Equal(t, "https://betconverter.example", opts.CORSOrigin)
		require.Equal(t, 7, opts.RateLimit)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown flag", args: []string{"-zzz"}},
		{name: "bad engine url", env: map[string]string{"ENGINE_URL": "not a url"}},
		{name: "bad duration", env: map[string]string{"ENGINE_TIMEOUT": "soon"}},
		{name: "zero engine timeout", env: map[string]string{"ENGINE_TIMEOUT": "0s"}},
		{name: "bad bool", env: map[string]string{"ENABLE_HTTPS": "maybe"}},
		{name: "negative rate limit", env: map[string]string{"RATE_LIMIT": "-1"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "missing config file", env: map[string]string{"CONFIG": "/does/not/exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.args, env(tt.env))
			require.Error(t, err)
		})
	}
}

func TestLoad_BadConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"cache_ttl": "forever"}`), 0o644))

	_, err := config.Load([]string{"-c", cfgPath}, env(nil))
	require.Error(t, err)
}
