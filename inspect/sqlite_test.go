package inspect

import (
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func openTestDB(t *testing.T, ddl ...string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		assert.NoError(t, err)
	}
	return db
}

func TestSQLiteInspector(t *testing.T) {
	t.Run("EmptyDatabase", func(t *testing.T) {
		db := openTestDB(t)

		snapshot, err := Snapshot(db, &SQLiteInspector{})
		assert.NoError(t, err)
		assert.Equal(t, 0, len(snapshot.Tables))
	})

	t.Run("TablesSortedByName", func(t *testing.T) {
		db := openTestDB(t,
			`CREATE TABLE orders (order_id TEXT, customer_id TEXT)`,
			`CREATE TABLE customers (customer_id TEXT, name TEXT)`,
		)

		snapshot, err := Snapshot(db, &SQLiteInspector{})
		assert.NoError(t, err)
		assert.Equal(t, []string{"customers", "orders"}, snapshot.TableNames())
	})

	t.Run("ColumnsInDeclarationOrder", func(t *testing.T) {
		db := openTestDB(t,
			`CREATE TABLE orders (order_id TEXT, customer_id TEXT, total_amount REAL, order_date TEXT)`,
		)

		inspector := &SQLiteInspector{}
		columns, err := inspector.Columns(db, "orders")
		assert.NoError(t, err)
		assert.Equal(t, []string{"order_id", "customer_id", "total_amount", "order_date"}, columns)
	})

	t.Run("CasePreserved", func(t *testing.T) {
		db := openTestDB(t, `CREATE TABLE Customers (CustomerID TEXT, Name TEXT)`)

		snapshot, err := Snapshot(db, &SQLiteInspector{})
		assert.NoError(t, err)
		assert.Equal(t, []string{"Customers"}, snapshot.TableNames())

		table, ok := snapshot.Lookup("customers")
		assert.True(t, ok)
		assert.Equal(t, "Customers", table.Name)
		assert.Equal(t, []string{"CustomerID", "Name"}, table.Columns)
	})

	t.Run("InternalTablesExcluded", func(t *testing.T) {
		// AUTOINCREMENT forces the sqlite_sequence internal table into
		// existence; it must not show up in the snapshot.
		db := openTestDB(t,
			`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, label TEXT)`,
			`INSERT INTO items (label) VALUES ('x')`,
		)

		snapshot, err := Snapshot(db, &SQLiteInspector{})
		assert.NoError(t, err)
		assert.Equal(t, []string{"items"}, snapshot.TableNames())
	})
}
