// Package config resolves the server configuration from flags, environment
// variables and an optional config file.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/moviegraph/core/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. MOVIEGRAPH_ADDR.
const EnvPrefix = "MOVIEGRAPH"

const (
	KeyAddr            = "addr"
	KeyCorsOrigin      = "cors_origin"
	KeyGraphiQL        = "graphiql"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyMetrics         = "metrics"
	KeyTracing         = "tracing"
	KeyMaxDepth        = "max_depth"
	KeyMaxParallelism  = "max_parallelism"
	KeyShutdownTimeout = "shutdown_timeout"
	KeySeed            = "seed"
	KeySeedFile        = "seed_file"
	KeyConfig          = "config"
)

type Config struct {
	Addr            string        `mapstructure:"addr"`
	CorsOrigin      string        `mapstructure:"cors_origin"`
	GraphiQL        bool          `mapstructure:"graphiql"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	Metrics         bool          `mapstructure:"metrics"`
	Tracing         bool          `mapstructure:"tracing"`
	MaxDepth        int           `mapstructure:"max_depth"`
	MaxParallelism  int           `mapstructure:"max_parallelism"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Seed loads the built-in directors and movies. Ignored when SeedFile is set.
	Seed     bool   `mapstructure:"seed"`
	SeedFile string `mapstructure:"seed_file"`
}

func Default() Config {
	return Config{
		Addr:            ":5000",
		CorsOrigin:      "*",
		GraphiQL:        true,
		LogLevel:        "info",
		LogFormat:       logging.FormatJSON,
		Metrics:         true,
		MaxDepth:        10,
		MaxParallelism:  10,
		ShutdownTimeout: 10 * time.Second,
		Seed:            true,
	}
}

// RegisterFlags declares one flag per configuration key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "Configuration file. Values are overridden by environment variables and flags.")
	fs.String(KeyAddr, d.Addr, "Address the HTTP server listens on.")
	fs.String(KeyCorsOrigin, d.CorsOrigin, "Value of the Access-Control-Allow-Origin header.")
	fs.Bool(KeyGraphiQL, d.GraphiQL, "Serve the GraphiQL explorer on GET /graphql.")
	fs.String(KeyLogLevel, d.LogLevel, "Log level, one of [debug, info, warn, error].")
	fs.String(KeyLogFormat, d.LogFormat, "Log format, one of [json, console].")
	fs.Bool(KeyMetrics, d.Metrics, "Expose prometheus metrics on /metrics.")
	fs.Bool(KeyTracing, d.Tracing, "Record OpenTelemetry spans for GraphQL requests.")
	fs.Int(KeyMaxDepth, d.MaxDepth, "Maximum selection depth of a GraphQL document.")
	fs.Int(KeyMaxParallelism, d.MaxParallelism, "Maximum number of resolvers run in parallel per request.")
	fs.Duration(KeyShutdownTimeout, d.ShutdownTimeout, "Time allowed for in-flight requests on shutdown.")
	fs.Bool(KeySeed, d.Seed, "Start with the built-in directors and movies.")
	fs.String(KeySeedFile, "", "JSON file with initial directors and movies.")
}

// NewViper returns a viper instance bound to fs and the MOVIEGRAPH_ environment.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the optional config file named by the "config" key and decodes
// the merged settings.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("invalid config: addr must not be empty")
	}
	if c.MaxDepth <= 0 {
		return errors.Errorf("invalid config: max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.MaxParallelism <= 0 {
		return errors.Errorf("invalid config: max_parallelism must be positive, got %d", c.MaxParallelism)
	}
	if c.ShutdownTimeout < 0 {
		return errors.Errorf("invalid config: shutdown_timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	switch c.LogFormat {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return errors.Errorf("invalid config: unknown log_format %q", c.LogFormat)
	}
	return nil
}
