package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables that override the config file.
const (
	EnvAddr           = "KHIDMAT_ADDR"
	EnvDataDir        = "KHIDMAT_DATA_DIR"
	EnvShopName       = "KHIDMAT_SHOP_NAME"
	EnvAdminHash      = "KHIDMAT_ADMIN_PASSWORD_HASH"
	EnvJWTSecret      = "KHIDMAT_JWT_SECRET"
	EnvWeatherAPIKey  = "KHIDMAT_WEATHER_API_KEY"
	EnvWeatherLoc     = "KHIDMAT_WEATHER_LOCATION"
	EnvWeatherTimeout = "KHIDMAT_WEATHER_TIMEOUT"
	EnvKafkaBrokers   = "KHIDMAT_KAFKA_BROKERS"
	EnvLogLevel       = "LOG_LEVEL"
)

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvAddr, &c.Server.Addr)
	str(EnvDataDir, &c.Data.Dir)
	str(EnvShopName, &c.Shop.Name)
	str(EnvAdminHash, &c.Admin.PasswordHash)
	str(EnvJWTSecret, &c.Admin.JWTSecret)
	str(EnvWeatherAPIKey, &c.Weather.APIKey)
	str(EnvWeatherLoc, &c.Weather.Location)
	str(EnvLogLevel, &c.Log.Level)

	if v, ok := lookup(EnvWeatherTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWeatherTimeout, err)
		}
		c.Weather.Timeout = d
	}
	if v, ok := lookup(EnvKafkaBrokers); ok && v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
	return nil
}

// Load reads path (if non-empty) over the defaults, then applies the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}
