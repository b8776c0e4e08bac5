// Package config resolves the server configuration from built-in defaults,
// an optional JSON file, command-line flags and environment variables, in
// increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Options holds the configuration values for the server.
type Options struct {
	// ServerAddress is the API listen address (host:port).
	ServerAddress string `validate:"required,hostname_port"`

	// CatalogFile is a YAML bookmaker list replacing the built-in catalog.
	CatalogFile string

	// EngineURL is the conversion engine endpoint. Empty disables conversion.
	EngineURL     string        `validate:"omitempty,url"`
	EngineTimeout time.Duration `validate:"gt=0"`

	// RedisAddr selects the Redis result cache; empty uses memory.
	RedisAddr string `validate:"omitempty,hostname_port"`

	// CacheTTL is how long a conversion result is reused. Zero disables caching.
	CacheTTL time.Duration `validate:"gte=0"`

	// MetricsAddress serves /metrics and /healthz. Empty disables the listener.
	MetricsAddress string `validate:"omitempty,hostname_port"`

	EnableHTTPS bool
	EnablePprof bool

	LogLevel string `validate:"oneof=debug info warn error dpanic panic fatal"`

	// CORSOrigin is the browser origin allowed to call the API.
	CORSOrigin string

	// RateLimit is the number of conversions per IP per minute. Zero disables it.
	RateLimit int `validate:"gte=0"`

	// Config is the path of the JSON config file.
	Config string
}

// fileOptions is the JSON config file layout. Durations are Go duration
// strings such as "90s".
type fileOptions struct {
	ServerAddress  *string `json:"server_address"`
	CatalogFile    *string `json:"catalog_file"`
	EngineURL      *string `json:"engine_url"`
	EngineTimeout  *string `json:"engine_timeout"`
	RedisAddr      *string `json:"redis_addr"`
	CacheTTL       *string `json:"cache_ttl"`
	MetricsAddress *string `json:"metrics_address"`
	EnableHTTPS    *bool   `json:"enable_https"`
	EnablePprof    *bool   `json:"enable_pprof"`
	LogLevel       *string `json:"log_level"`
	CORSOrigin     *string `json:"cors_origin"`
	RateLimit      *int    `json:"rate_limit"`
}

func defaults() *Options {
	return &Options{
		ServerAddress:  "localhost:8080",
		EngineTimeout:  60 * time.Second,
		CacheTTL:       10 * time.Minute,
		MetricsAddress: "localhost:9090",
		LogLevel:       "info",
		CORSOrigin:     "*",
		RateLimit:      10,
	}
}

// Parse reads the process arguments and environment.
func Parse() (*Options, error) {
	return Load(os.Args[1:], os.Getenv)
}

// Load resolves the options from args and getenv.
func Load(args []string, getenv func(string) string) (*Options, error) {
	options := defaults()

	fs := flag.NewFlagSet("betconverter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&options.ServerAddress, "a", options.ServerAddress, "run on ip:port server")
	fs.StringVar(&options.CatalogFile, "catalog", options.CatalogFile, "path to a YAML bookmaker catalog")
	fs.StringVar(&options.EngineURL, "e", options.EngineURL, "conversion engine url")
	fs.DurationVar(&options.EngineTimeout, "engine-timeout", options.EngineTimeout, "conversion engine timeout")
	fs.StringVar(&options.RedisAddr, "r", options.RedisAddr, "redis address for the result cache")
	fs.DurationVar(&options.CacheTTL, "cache-ttl", options.CacheTTL, "result cache ttl, 0 disables caching")
	fs.StringVar(&options.MetricsAddress, "m", options.MetricsAddress, "metrics listen address")
	fs.BoolVar(&options.EnableHTTPS, "s", options.EnableHTTPS, "enable https")
	fs.BoolVar(&options.EnablePprof, "p", options.EnablePprof, "enable pprof")
	fs.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
	fs.StringVar(&options.CORSOrigin, "cors-origin", options.CORSOrigin, "allowed browser origin")
	fs.IntVar(&options.RateLimit, "rate-limit", options.RateLimit, "conversions per ip per minute")
	fs.StringVar(&options.Config, "c", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if v := getenv("CONFIG"); v != "" {
		options.Config = v
	}
	if options.Config != "" {
		if err := applyFile(options, options.Config, set); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(options, getenv); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(options); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return options, nil
}

// applyFile copies file values into options for every flag not given on
// the command line.
func applyFile(options *Options, path string, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fo fileOptions
	if err := json.Unmarshal(data, &fo); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setString := func(flagName string, dst *string, v *string) {
		if v != nil && !set[flagName] {
			*dst = *v
		}
	}
	setDuration := func(flagName string, dst *time.Duration, v *string) error {
		if v == nil || set[flagName] {
			return nil
		}
		d, err := time.ParseDuration(*v)
		if err != nil {
			return fmt.Errorf("config file %s: %w", flagName, err)
		}
		*dst = d
		return nil
	}

	setString("a", &options.ServerAddress, fo.ServerAddress)
	setString("catalog", &options.CatalogFile, fo.CatalogFile)
	setString("e", &options.EngineURL, fo.EngineURL)
	setString("r", &options.RedisAddr, fo.RedisAddr)
	setString("m", &options.MetricsAddress, fo.MetricsAddress)
	setString("l", &options.LogLevel, fo.LogLevel)
	setString("cors-origin", &options.CORSOrigin, fo.CORSOrigin)

	if err := errors.Join(
		setDuration("engine-timeout", &options.EngineTimeout, fo.EngineTimeout),
		setDuration("cache-ttl", &options.CacheTTL, fo.CacheTTL),
	); err != nil {
		return err
	}

	if fo.EnableHTTPS != nil && !set["s"] {
		options.EnableHTTPS = *fo.EnableHTTPS
	}
	if fo.EnablePprof != nil && !set["p"] {
		options.EnablePprof = *fo.EnablePprof
	}
	if fo.RateLimit != nil && !set["rate-limit"] {
		options.RateLimit = *fo.RateLimit
	}

	return nil
}

func applyEnv(options *Options, getenv func(string) string) error {
	strs := map[string]*string{
		"SERVER_ADDRESS":  &options.ServerAddress,
		"CATALOG_FILE":    &options.CatalogFile,
		"ENGINE_URL":      &options.EngineURL,
		"REDIS_ADDR":      &options.RedisAddr,
		"METRICS_ADDRESS": &options.MetricsAddress,
		"LOG_LEVEL":       &options.LogLevel,
		"CORS_ORIGIN":     &options.CORSOrigin,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ENGINE_TIMEOUT": &options.EngineTimeout,
		"CACHE_TTL":      &options.CacheTTL,
	}
	for name, dst := range durations {
		if v := getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		"ENABLE_HTTPS": &options.EnableHTTPS,
		"ENABLE_PPROF": &options.EnablePprof,
	}
	for name, dst := range bools {
		if v := getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = b
		}
	}

	if v := getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		options.RateLimit = n
	}

	return nil
}
