// Package config provides configuration loading for the shop service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Shop    ShopConfig    `yaml:"shop"`
	Data    DataConfig    `yaml:"data"`
	Admin   AdminConfig   `yaml:"admin"`
	Weather WeatherConfig `yaml:"weather"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ShopConfig holds the name printed on bills.
type ShopConfig struct {
	Name string `yaml:"name"`
}

// DataConfig locates the on-disk stores. Relative paths are resolved against Dir.
type DataConfig struct {
	Dir        string `yaml:"dir"`
	LedgerDir  string `yaml:"ledger_dir"`
	ImageDir   string `yaml:"image_dir"`
	BillDir    string `yaml:"bill_dir"`
	MessageLog string `yaml:"message_log"`
	Database   string `yaml:"database"`
}

// AdminConfig configures the shared admin credential and its sessions.
type AdminConfig struct {
	// PasswordHash is a bcrypt hash (see the hash-password command).
	PasswordHash string `yaml:"password_hash"`
	// JWTSecret signs admin session tokens.
	JWTSecret string `yaml:"jwt_secret"`
	// SessionTTL is how long an admin session token stays valid.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// WeatherConfig configures the advisory's weather lookup.
type WeatherConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Location string        `yaml:"location"`
	Timeout  time.Duration `yaml:"timeout"`
}

// KafkaConfig enables message event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Shop: ShopConfig{
			Name: "Kisan Khidmat Ghar",
		},
		Data: DataConfig{
			Dir:        "./data",
			LedgerDir:  "customer_data",
			ImageDir:   "consultation_images",
			BillDir:    "bills",
			MessageLog: "message_log.csv",
			Database:   "records.db",
		},
		Admin: AdminConfig{
			SessionTTL: 12 * time.Hour,
		},
		Weather: WeatherConfig{
			BaseURL:  "https://api.openweathermap.org",
			Location: "Chakoora,IN",
			Timeout:  5 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: "khidmat.messages.logged",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Shop.Name == "" {
		return fmt.Errorf("shop.name is required")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin.password_hash is required")
	}
	if len(c.Admin.JWTSecret) < 16 {
		return fmt.Errorf("admin.jwt_secret must be at least 16 characters")
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("admin.session_ttl must be positive")
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("weather.timeout must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Path resolves a data path against Data.Dir unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Data.Dir, p)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
