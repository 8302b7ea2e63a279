package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Error definitions
var (
	ErrCSVNotFound   = errors.New("csv file not found")
	ErrCSVRead       = errors.New("failed to read csv file")
	ErrMissingColumn = errors.New("csv file is missing a required column")
	ErrLoadFailed    = errors.New("failed to load table")
)

// Loader recreates tables and bulk-inserts CSV rows
type Loader struct {
	db *sql.DB
}

// NewLoader creates a loader bound to an open connection
func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Load recreates def's table and inserts every row of its CSV file from
// dir. It returns the number of rows inserted. A missing file yields
// ErrCSVNotFound so callers can skip the table with a warning.
func (l *Loader) Load(ctx context.Context, dir string, def TableDef) (int, error) {
	path := filepath.Join(dir, def.File)
	records, err := readCSV(path, def)
	if err != nil {
		return 0, err
	}

	if _, err := l.db.ExecContext(ctx, def.DropSQL()); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
	}
	if _, err := l.db.ExecContext(ctx, def.CreateSQL()); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
	}

	if len(records) == 0 {
		return 0, nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, def.InsertSQL())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, record...); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrLoadFailed, def.Table, err)
	}

	return len(records), nil
}

// TableCount pairs a table name with its loaded row count
type TableCount struct {
	Table string
	Count int
}

// Counts returns the row count of every managed table that exists
func (l *Loader) Counts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(Tables))
	for _, def := range Tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %q", def.Table)
		if err := l.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			// Skipped tables were never created; leave them out
			continue
		}
		counts = append(counts, TableCount{Table: def.Table, Count: count})
	}
	return counts, nil
}

// readCSV reads the file and coerces each row into column order, following
// the table definition's types
func readCSV(path string, def TableDef) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCSVNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCSVRead, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCSVRead, path, err)
	}

	// Map each defined column to its position in the file
	positions := make([]int, len(def.Columns))
	for i, col := range def.Columns {
		positions[i] = -1
		for j, name := range header {
			if name == col.Name {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, col.Name, path)
		}
	}

	var records [][]any
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCSVRead, path, err)
		}

		values := make([]any, len(def.Columns))
		for i, col := range def.Columns {
			values[i] = coerce(col.Type, strings.TrimSpace(row[positions[i]]))
		}
		records = append(records, values)
	}

	return records, nil
}

// coerce converts a CSV field to the column's storage type. Empty and
// unparseable fields become NULL rather than aborting the load.
func coerce(colType ColumnType, value string) any {
	if value == "" {
		return nil
	}
	switch colType {
	case TypeInteger:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		return int64(f)
	case TypeReal:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return value
	}
}
