// Package migrations contains all relational migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported blank by cmd/bhandar and cmd/server so
// every migration is registered at startup.
package migrations
