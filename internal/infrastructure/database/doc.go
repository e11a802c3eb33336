// Package database provides the SQLite store behind Gray Logic Hub's
// device access log.
//
// Open creates the database file (and its directory) with owner-only
// permissions, applies the busy timeout and optional WAL journal, and pins
// the pool to a single connection since SQLite allows one writer.
//
// Schema changes live in embedded migration files named
// YYYYMMDD_HHMMSS_description.up.sql with an optional matching .down.sql.
// The migrations package registers them in Migrations at init time:
//
//	db, err := database.Open(database.Config{Path: "./data/grayhub.db", WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Each migration runs in its own transaction and is recorded in
// schema_migrations, so Migrate is safe to call on every start.
package database
