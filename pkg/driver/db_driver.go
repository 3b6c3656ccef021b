// Package driver provides an interface to connect different types of persistent storage, such as a database, file, or cache.
package driver

import "gorm.io/gorm"

// DB holds the connection to the application database. Postgres in
// production, in-memory sqlite in tests; both speak through the same gorm
// handle.
type DB struct {
	Gorm *gorm.DB
}
