package repository

import "errors"

// ErrNoDatabase is returned when the service runs without a configured pool.
var ErrNoDatabase = errors.New("database not configured")
