package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/blogmesh/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":5000")
//	-m string   metrics bind address (empty disables)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t duration access token validity (e.g., "1h")
//	-b int      bcrypt cost
//	-migrate    run schema migrations at start-up (use -migrate=false to skip)
//	-l string   log level
//	-f string   log format (json or text)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-d", "-s", "-t", "-b", "-migrate", "-l", "-f"})

	fs := flag.NewFlagSet("identity", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.IntVar(&cfg.BcryptCost, "b", cfg.BcryptCost, "bcrypt cost")
	fs.BoolVar(&cfg.RunMigrations, "migrate", cfg.RunMigrations, "run migrations")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	return fs.Parse(args)
}
