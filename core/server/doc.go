// Package server holds the HTTP server configuration and constants.
//
// The Config struct defines the HTTP port, the API key guarding every route, and the
// state backend: "memory" keeps the stores in process only, "database" journals every
// committed change through core/database and reloads it on start.
package server
