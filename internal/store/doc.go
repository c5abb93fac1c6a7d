// Package store persists identified media and request audit trails in
// PostgreSQL. It owns the connection pool, the schema bootstrap, and the
// mapping between database rows and the canonical media.Info record.
package store
