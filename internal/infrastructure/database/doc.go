// Package database manages the server's SQLite store.
//
// It wraps database/sql with connection pragmas suited to SQLite's
// single-writer model and runs embedded schema migrations on startup.
// Device definitions are persisted here so they survive server restarts.
package database
