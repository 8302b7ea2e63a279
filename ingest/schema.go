// Package ingest bulk-loads the generated CSV files into a relational
// store, recreating each target table first.
package ingest

import (
	"fmt"
	"strings"
)

// ColumnType is the storage type used for a loaded column
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
)

// ColumnDef describes one column of a target table
type ColumnDef struct {
	Name string
	Type ColumnType
}

// TableDef binds a CSV file to a target table and its column layout
type TableDef struct {
	Table   string
	File    string
	Columns []ColumnDef
}

// Tables lists every table the loader manages, in load order
var Tables = []TableDef{
	{
		Table: "customers",
		File:  "customers.csv",
		Columns: []ColumnDef{
			{"customer_id", TypeText},
			{"name", TypeText},
			{"email", TypeText},
			{"phone", TypeText},
			{"address", TypeText},
			{"created_at", TypeText},
		},
	},
	{
		Table: "products",
		File:  "products.csv",
		Columns: []ColumnDef{
			{"product_id", TypeText},
			{"name", TypeText},
			{"category", TypeText},
			{"price", TypeReal},
			{"stock", TypeInteger},
			{"created_at", TypeText},
		},
	},
	{
		Table: "orders",
		File:  "orders.csv",
		Columns: []ColumnDef{
			{"order_id", TypeText},
			{"customer_id", TypeText},
			{"product_id", TypeText},
			{"quantity", TypeInteger},
			{"order_date", TypeText},
			{"status", TypeText},
			{"subtotal", TypeReal},
			{"shipping", TypeReal},
			{"total", TypeReal},
		},
	},
	{
		Table: "payments",
		File:  "payments.csv",
		Columns: []ColumnDef{
			{"payment_id", TypeText},
			{"order_id", TypeText},
			{"amount", TypeReal},
			{"method", TypeText},
			{"status", TypeText},
			{"payment_date", TypeText},
		},
	},
	{
		Table: "reviews",
		File:  "reviews.csv",
		Columns: []ColumnDef{
			{"review_id", TypeText},
			{"product_id", TypeText},
			{"customer_id", TypeText},
			{"rating", TypeInteger},
			{"review_text", TypeText},
			{"review_date", TypeText},
		},
	},
}

// DropSQL renders the statement that removes a previous load of the table
func (t TableDef) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %q", t.Table)
}

// CreateSQL renders the CREATE TABLE statement for the table
func (t TableDef) CreateSQL() string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("%q %s", c.Name, c.Type))
	}
	return fmt.Sprintf("CREATE TABLE %q (%s)", t.Table, strings.Join(cols, ", "))
}

// InsertSQL renders the parameterized INSERT statement for one row
func (t TableDef) InsertSQL() string {
	names := make([]string, 0, len(t.Columns))
	placeholders := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, fmt.Sprintf("%q", c.Name))
		placeholders = append(placeholders, "?")
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		t.Table, strings.Join(names, ","), strings.Join(placeholders, ","))
}
