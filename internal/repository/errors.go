package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// This allows the repository to communicate outcomes in a storage-agnostic way.

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// key has never been written or has been deleted.
//
// The store layer checks for this error and treats it as "start from defaults",
// which keeps it independent of the backend's own miss signal
// (sql.ErrNoRows, redis.Nil, badger.ErrKeyNotFound).
var ErrNotFound = errors.New("repository: not found")
