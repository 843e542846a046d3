package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"store-inventory/core/cache"
	"store-inventory/core/catalog"
	"store-inventory/core/database"
	"store-inventory/core/logger"
	"store-inventory/core/server"
	"store-inventory/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for snapshot object storage (S3, MinIO).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Cache holds configuration for Redis.
	Cache cache.Config `mapstructure:"cache"`
	// Catalog holds configuration for the initial catalog.
	Catalog catalog.Config `mapstructure:"catalog"`
}

// LoadConfig loads configuration from the environment, overlaid by the .env file in path,
// and validates it.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Deployments configure through the environment and ship no .env file.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !c.Server.IsValidBackend() {
		errs = append(errs, fmt.Errorf("server.backend %q: expected %s or %s", c.Server.Backend, server.BackendMemory, server.BackendDatabase))
	}
	if c.Server.Persistent() && c.Database.Driver != database.DriverMySQL && c.Database.Driver != database.DriverSQLite {
		errs = append(errs, fmt.Errorf("database.driver %q: expected %s or %s", c.Database.Driver, database.DriverMySQL, database.DriverSQLite))
	}
	if c.Log.Format != "" && c.Log.Format != logger.FormatJSON && c.Log.Format != logger.FormatConsole {
		errs = append(errs, fmt.Errorf("log.format %q: expected %s or %s", c.Log.Format, logger.FormatJSON, logger.FormatConsole))
	}
	if c.Cache.Enabled && c.Cache.IdempotencyTTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("cache.idempotency_ttl_seconds must be positive"))
	}
	if c.Storage.SnapshotRetention < 0 {
		errs = append(errs, fmt.Errorf("storage.snapshot_retention must not be negative"))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
