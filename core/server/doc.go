// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the bind host, HTTP port, and the optional API key
// that protects every route when set.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to bind the listener and configure authentication.
package server
