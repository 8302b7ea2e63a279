package query

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/shopprobe/inspect"
	"github.com/shibukawa/shopprobe/plan"
)

// End-to-end pipeline runs: inspect a live SQLite schema, build the plan,
// execute it, and check the projected shape.

func setupDB(t *testing.T, statements ...string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		assert.NoError(t, err)
	}
	return db
}

func runPipeline(t *testing.T, db *sql.DB) (*plan.Plan, *Result) {
	t.Helper()

	snapshot, err := inspect.Snapshot(db, &inspect.SQLiteInspector{})
	assert.NoError(t, err)

	p, err := plan.Build(snapshot)
	assert.NoError(t, err)

	result, err := NewExecutor(db).Execute(context.Background(), p.SQL, 0)
	assert.NoError(t, err)
	return p, result
}

func TestPipelineMinimal(t *testing.T) {
	db := setupDB(t,
		`CREATE TABLE customers (customer_id TEXT, name TEXT)`,
		`CREATE TABLE orders (order_id TEXT, customer_id TEXT, total_amount REAL, order_date TEXT)`,
		`INSERT INTO customers VALUES ('CUST0001', 'James Smith')`,
		`INSERT INTO orders VALUES ('ORD00001', 'CUST0001', 59.97, '2024-05-01T10:00:00')`,
	)

	p, result := runPipeline(t, db)
	assert.Equal(t, plan.TierMinimal, p.Tier)
	assert.Equal(t, []string{"customer_id", "customer_name", "order_id", "order_date", "total_amount"}, result.Columns)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "James Smith", result.Rows[0][1].(string))
}

func TestPipelineDegraded(t *testing.T) {
	db := setupDB(t,
		`CREATE TABLE customers (customer_id TEXT, name TEXT)`,
		`CREATE TABLE orders (order_id TEXT, customer_id TEXT, product_id TEXT, total_amount REAL, order_date TEXT)`,
		`CREATE TABLE products (product_id TEXT, name TEXT)`,
		`INSERT INTO customers VALUES ('CUST0001', 'Mary Garcia')`,
		`INSERT INTO products VALUES ('PROD0001', 'Smart Lamp')`,
		`INSERT INTO orders VALUES ('ORD00001', 'CUST0001', 'PROD0001', 89.50, '2024-06-12T09:30:00')`,
	)

	p, result := runPipeline(t, db)
	assert.Equal(t, plan.TierDegraded, p.Tier)
	assert.Equal(t, 1, result.Count)

	row := result.Rows[0]
	assert.Equal(t, "Smart Lamp", row[2].(string))  // product_name
	assert.Equal(t, int64(1), row[5].(int64))       // synthesized quantity
	assert.Equal(t, 89.50, row[6].(float64))        // subtotal from orders total
	assert.Equal(t, nil, row[7])                    // no reviews table
}

func TestPipelineFull(t *testing.T) {
	db := setupDB(t,
		`CREATE TABLE customers (customer_id TEXT, name TEXT)`,
		`CREATE TABLE orders (order_id TEXT, customer_id TEXT, total_amount REAL, order_date TEXT)`,
		`CREATE TABLE products (product_id TEXT, name TEXT)`,
		`CREATE TABLE order_items (order_id TEXT, product_id TEXT, quantity INTEGER, subtotal REAL)`,
		`CREATE TABLE reviews (customer_id TEXT, product_id TEXT, rating INTEGER)`,
		`INSERT INTO customers VALUES ('CUST0001', 'John Davis')`,
		`INSERT INTO products VALUES ('PROD0001', 'Durable Backpack')`,
		`INSERT INTO orders VALUES ('ORD00001', 'CUST0001', 120.00, '2024-07-01T15:45:00')`,
		`INSERT INTO order_items VALUES ('ORD00001', 'PROD0001', 2, 120.00)`,
		`INSERT INTO reviews VALUES ('CUST0001', 'PROD0001', 5)`,
	)

	p, result := runPipeline(t, db)
	assert.Equal(t, plan.TierFull, p.Tier)
	assert.Equal(t, 1, result.Count)

	row := result.Rows[0]
	assert.Equal(t, "Durable Backpack", row[2].(string)) // product_name
	assert.Equal(t, int64(2), row[5].(int64))            // quantity from line item
	assert.Equal(t, int64(5), row[7].(int64))            // rating from reviews
}

func TestPipelineLiteralFallbackSurfacesError(t *testing.T) {
	// order_items has neither a quantity nor a subtotal candidate, so the
	// full tier renders the literal names and execution fails. The failure
	// must be a reported execution error, not a panic or a silent rewrite.
	db := setupDB(t,
		`CREATE TABLE customers (customer_id TEXT, name TEXT)`,
		`CREATE TABLE orders (order_id TEXT, customer_id TEXT, order_date TEXT)`,
		`CREATE TABLE products (product_id TEXT, name TEXT)`,
		`CREATE TABLE order_items (order_id TEXT, product_id TEXT, units INTEGER, line_price REAL)`,
	)

	snapshot, err := inspect.Snapshot(db, &inspect.SQLiteInspector{})
	assert.NoError(t, err)

	p, err := plan.Build(snapshot)
	assert.NoError(t, err)
	assert.Equal(t, plan.TierFull, p.Tier)

	_, err = NewExecutor(db).Execute(context.Background(), p.SQL, 0)
	assert.IsError(t, err, ErrQueryExecution)
}
