package repository

import "errors"

// Sentinel kinds for database errors.
var (
	ErrConnect = errors.New("database connection failed")
	ErrUpsert  = errors.New("database upsert failed")
)
