// Package config handles configuration for the gateway.
package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/configx"
	"github.com/dmitrijs2005/blogmesh/internal/flagx"
	"github.com/dmitrijs2005/blogmesh/internal/timex"
)

// Config holds runtime settings for the gateway.
//
// Fields:
//   - HTTPAddr: bind address of the public REST API.
//   - IdentityAddr / ContentAddr: gRPC targets of the downstream services.
//   - AllowedOrigins: CORS origins; "*" allows any.
//   - ValidateTimeout: bound on the token validation call made by the
//     authorization gate; zero means no bound.
type Config struct {
	HTTPAddr        string
	IdentityAddr    string
	ContentAddr     string
	AllowedOrigins  []string
	ValidateTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.IdentityAddr = "localhost:5000"
	c.ContentAddr = "localhost:5001"
	c.AllowedOrigins = []string{"*"}
	c.ValidateTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "json"
}

type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	IdentityAddr    *string         `json:"identity_addr"`
	ContentAddr     *string         `json:"content_addr"`
	AllowedOrigins  []string        `json:"allowed_origins"`
	ValidateTimeout *timex.Duration `json:"validate_timeout"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

// LoadConfig applies defaults, the JSON file given by -c, the environment
// and command-line flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFile(args); path != "" {
		j := &JsonConfig{}
		if err := configx.ReadJSON(path, j); err != nil {
			return nil, err
		}
		j.apply(cfg)
	}

	if err := configx.LoadDotEnv(); err != nil {
		return nil, err
	}
	env := configx.NewEnv(lookup)
	env.String(&cfg.HTTPAddr, "HTTP_ADDR")
	env.String(&cfg.IdentityAddr, "AUTH_SERVICE_URL")
	env.String(&cfg.ContentAddr, "POST_SERVICE_URL")
	env.List(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	env.Duration(&cfg.ValidateTimeout, "VALIDATE_TIMEOUT")
	env.String(&cfg.LogLevel, "LOG_LEVEL")
	env.String(&cfg.LogFormat, "LOG_FORMAT")
	if err := env.Err(); err != nil {
		return nil, err
	}

	var origins string
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run server")
	fs.StringVar(&cfg.IdentityAddr, "i", cfg.IdentityAddr, "identity service address")
	fs.StringVar(&cfg.ContentAddr, "p", cfg.ContentAddr, "content service address")
	fs.StringVar(&origins, "o", "", "comma separated CORS origins")
	fs.DurationVar(&cfg.ValidateTimeout, "vt", cfg.ValidateTimeout, "token validation timeout (0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-i", "-p", "-o", "-vt", "-l", "-f"})); err != nil {
		return nil, err
	}
	if origins != "" {
		cfg.AllowedOrigins = configx.SplitList(origins)
	}

	if cfg.IdentityAddr == "" || cfg.ContentAddr == "" {
		return nil, errors.New("identity and content addresses must be set")
	}
	if cfg.ValidateTimeout < 0 {
		return nil, errors.New("validate timeout must not be negative")
	}
	return cfg, nil
}

func (j *JsonConfig) apply(cfg *Config) {
	if j.HTTPAddr != nil {
		cfg.HTTPAddr = *j.HTTPAddr
	}
	if j.IdentityAddr != nil {
		cfg.IdentityAddr = *j.IdentityAddr
	}
	if j.ContentAddr != nil {
		cfg.ContentAddr = *j.ContentAddr
	}
	if j.AllowedOrigins != nil {
		cfg.AllowedOrigins = j.AllowedOrigins
	}
	if j.ValidateTimeout != nil {
		cfg.ValidateTimeout = j.ValidateTimeout.Duration
	}
	if j.LogLevel != nil {
		cfg.LogLevel = *j.LogLevel
	}
	if j.LogFormat != nil {
		cfg.LogFormat = *j.LogFormat
	}
}
