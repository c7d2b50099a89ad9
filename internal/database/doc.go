// Package database keeps an audit log of login attempts in SQLite.
//
// Each row records who tried to log in (as an account fingerprint and a
// masked identifier), which flow ran and how it ended. Passwords, one-time
// codes and issued tokens are never written.
//
// The database is a single file opened with modernc.org/sqlite, which needs
// no cgo.
package database
