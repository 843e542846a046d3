package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Backend selects where state lives between restarts (memory, database).
	Backend string `mapstructure:"backend" default:"memory"`
}

const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendMemory, BackendDatabase:
		return true
	default:
		return false
	}
}

// Persistent reports whether state is journaled to the database.
func (c Config) Persistent() bool {
	return c.Backend == BackendDatabase
}
