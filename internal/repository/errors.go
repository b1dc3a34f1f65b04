package repository

import "github.com/silis/backend/internal/apperr"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = apperr.ErrNotFound
