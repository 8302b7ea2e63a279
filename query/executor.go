package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Error definitions
var (
	ErrQueryExecution = errors.New("query execution failed")
	ErrResultScan     = errors.New("result scan failed")
)

// Result represents the outcome of a query execution
type Result struct {
	SQL      string
	Columns  []string
	Rows     [][]any
	Count    int
	Duration time.Duration
}

// Executor executes rendered SQL against a live connection
type Executor struct {
	db *sql.DB
}

// NewExecutor creates a new query executor
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Execute runs the query and materializes all rows. A timeout of zero means
// no deadline. Execution failures (including unknown column names embedded
// by a literal fallback) come back wrapped in ErrQueryExecution so callers
// can report them without crashing.
func (e *Executor) Execute(ctx context.Context, sqlText string, timeout time.Duration) (*Result, error) {
	queryCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	startTime := time.Now()
	rows, err := e.db.QueryContext(queryCtx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecution, err)
	}
	defer rows.Close()

	result := &Result{
		SQL: sqlText,
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecution, err)
	}
	result.Columns = columns

	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResultScan, err)
		}

		rowValues := make([]any, len(columns))
		for i, v := range values {
			rowValues[i] = convertSQLValue(v)
		}
		result.Rows = append(result.Rows, rowValues)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecution, err)
	}

	result.Count = len(result.Rows)
	result.Duration = time.Since(startTime)

	return result, nil
}

// convertSQLValue converts driver values to displayable Go types
func convertSQLValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
