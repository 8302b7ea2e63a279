package inspect

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shibukawa/shopprobe"
)

// Inspector enumerates tables and their column names from a live database.
// Implementations read catalog metadata only and never mutate the store.
type Inspector interface {
	Tables(db *sql.DB) ([]string, error)
	Columns(db *sql.DB, tableName string) ([]string, error)
}

// NewInspector creates an inspector for the specified database type
func NewInspector(databaseType string) (Inspector, error) {
	switch strings.ToLower(databaseType) {
	case "sqlite", "sqlite3":
		return &SQLiteInspector{}, nil
	case "mysql":
		return &MySQLInspector{}, nil
	case "postgresql", "postgres":
		return &PostgreSQLInspector{}, nil
	default:
		return nil, ErrUnsupportedDatabase
	}
}

// Snapshot captures the current table/column layout of the database. A
// database with no tables yields an empty snapshot, not an error.
func Snapshot(db *sql.DB, inspector Inspector) (*shopprobe.Snapshot, error) {
	tableNames, err := inspector.Tables(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableListFailed, err)
	}

	snapshot := &shopprobe.Snapshot{}
	for _, name := range tableNames {
		columns, err := inspector.Columns(db, name)
		if err != nil {
			return nil, fmt.Errorf("%w: table %s: %v", ErrColumnListFailed, name, err)
		}
		snapshot.Tables = append(snapshot.Tables, shopprobe.Table{
			Name:    name,
			Columns: columns,
		})
	}

	return snapshot, nil
}
