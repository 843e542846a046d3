package catalog

// Config holds configuration for the catalog reference data.
type Config struct {
	// SeedFile is a JSON file with the baseline catalog, used when no database is configured.
	SeedFile string `mapstructure:"seed_file" default:""`
}
