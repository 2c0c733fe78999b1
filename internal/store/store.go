// Package store is the repository layer over the four WatchMatch
// entities. All entity mutation in the application goes through a Store
// instance; cross-record invariants (pairing symmetry, match
// deduplication) are maintained inside database transactions.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUsernameTaken is returned by CreateUser when the username exists.
var ErrUsernameTaken = errors.New("username already taken")

// Store provides data access methods for users, swipes, matches and
// partner requests. It is constructed once at startup and passed by
// reference into the API layer.
type Store struct {
	db *gorm.DB
}

// New creates a store bound to the given DB connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
