// Package database handles the optional SQL connection used to persist scanned
// titles.
//
// It wraps GORM to open either a MySQL server (gorm.io/driver/mysql) or a
// local SQLite file (github.com/glebarez/sqlite, pure Go) based on the
// configured driver.
//
// # Connect
//
// Connect opens the connection, applies pool settings and pings the server
// within the configured timeout. Callers treat a failure as "persistence
// disabled" rather than a fatal error.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live column set of a table so
// that callers can report drift between the stored schema and their models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable, titles will not be persisted", zap.Error(err))
//	}
package database
