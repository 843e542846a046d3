package cache

// Config holds configuration for the Redis connection.
type Config struct {
	// Enabled turns on Redis. When off, idempotency keys live in process memory.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the host:port of the Redis server.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password authenticates the connection.
	Password string `mapstructure:"password" default:""`
	// DB selects the Redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// IdempotencyTTLSeconds is how long a submission key is remembered.
	IdempotencyTTLSeconds int `mapstructure:"idempotency_ttl_seconds" default:"86400"`
}
