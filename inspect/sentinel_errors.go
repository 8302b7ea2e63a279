package inspect

import "errors"

// Connection errors
var (
	ErrConnectionFailed    = errors.New("failed to connect to database")
	ErrInvalidDatabaseURL  = errors.New("invalid database URL")
	ErrUnsupportedDatabase = errors.New("unsupported database type")
	ErrEmptyDatabaseURL    = errors.New("database URL cannot be empty")
	ErrDatabaseNotFound    = errors.New("database file not found")
)

// Inspection errors
var (
	ErrTableListFailed  = errors.New("failed to list tables")
	ErrColumnListFailed = errors.New("failed to list columns")
)
