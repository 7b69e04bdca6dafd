package config

import (
	"github.com/dmitrijs2005/blogmesh/internal/configx"
	"github.com/dmitrijs2005/blogmesh/internal/timex"
)

// JsonConfig is the on-disk shape of the identity config file. Only fields
// present in the file override the current values.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 *string         `json:"metrics_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	RunMigrations               *bool           `json:"run_migrations"`
	LogLevel                    *string         `json:"log_level"`
	LogFormat                   *string         `json:"log_format"`
}

func parseJSON(cfg *Config, path string) error {
	// nothing to load
	if path == "" {
		return nil
	}

	c := &JsonConfig{}
	if err := configx.ReadJSON(path, c); err != nil {
		return err
	}

	setString(&cfg.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&cfg.MetricsAddr, c.MetricsAddr)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		cfg.BcryptCost = *c.BcryptCost
	}
	if c.RunMigrations != nil {
		cfg.RunMigrations = *c.RunMigrations
	}
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
