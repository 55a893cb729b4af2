// Package sqlite provides a SQLite-based implementation of the driven
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - SubscriptionStore: subscribed repositories, in the order they were added
//   - SchedulerStore: scheduler cycle history
//
// Fetched repository data is never stored; every cycle queries GitHub afresh.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as NNN_name.up.sql files. Applied versions are recorded
// in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at $XDG_DATA_HOME/sentinel/sentinel.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
