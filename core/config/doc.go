// Package config loads the service configuration.
//
// Values come from environment variables, optionally read from a .env file first.
// Defaults live in the `default` struct tags of each section and are registered with
// Viper by reflection, so SERVER_PORT maps to server.port and so on.
//
// # Sections
//
//   - Server: HTTP port, API key, state backend (memory, database)
//   - Database: MySQL or SQLite connection
//   - Storage: S3/MinIO credentials, snapshot bucket, prefix and retention
//   - Cache: Redis connection and idempotency key TTL
//   - Catalog: seed file loaded into an empty catalog
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
