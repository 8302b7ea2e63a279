package plan

import (
	"github.com/shibukawa/shopprobe"
)

// RoleBinding maps logical column roles to the concrete names found in the
// snapshot. An empty string means the role is absent in this schema.
// CustomerID and OrderID are always bound: when no candidate matches they
// fall back to the table's first reported column.
type RoleBinding struct {
	CustomerID  string // customers table
	OrderID     string // orders table
	ProductID   string // order_items if present, else orders
	ProductName string // products table
	OrderTotal  string // orders table
	Quantity    string // order_items table
	Subtotal    string // order_items table
	Rating      string // reviews table
}

// Analysis couples table presence with the resolved role binding. Optional
// tables are nil when absent; Customers and Orders are guaranteed present.
type Analysis struct {
	Customers  shopprobe.Table
	Orders     shopprobe.Table
	Products   *shopprobe.Table
	OrderItems *shopprobe.Table
	Reviews    *shopprobe.Table

	Binding RoleBinding
}

// Analyze validates the mandatory tables and builds the role binding from a
// schema snapshot. It fails with ErrSchemaInsufficient when customers or
// orders is missing; every other table and role is optional.
func Analyze(snapshot *shopprobe.Snapshot) (*Analysis, error) {
	customers, hasCustomers := snapshot.Lookup("customers")
	orders, hasOrders := snapshot.Lookup("orders")
	if !hasCustomers || !hasOrders {
		return nil, ErrSchemaInsufficient
	}

	a := &Analysis{
		Customers: customers,
		Orders:    orders,
	}
	if t, ok := snapshot.Lookup("products"); ok {
		a.Products = &t
	}
	if t, ok := snapshot.Lookup("order_items"); ok {
		a.OrderItems = &t
	}
	if t, ok := snapshot.Lookup("reviews"); ok {
		a.Reviews = &t
	}

	a.Binding = bindRoles(a)

	return a, nil
}

func bindRoles(a *Analysis) RoleBinding {
	var b RoleBinding

	b.CustomerID = resolveOr(a.Customers.Columns, CustomerIDCandidates, firstColumn(a.Customers.Columns))
	b.OrderID = resolveOr(a.Orders.Columns, OrderIDCandidates, firstColumn(a.Orders.Columns))

	// Product id lives on the line-item table when one exists, otherwise
	// directly on orders (single-product order schemas).
	if a.OrderItems != nil {
		b.ProductID, _ = Resolve(a.OrderItems.Columns, ProductIDCandidates)
	}
	if b.ProductID == "" {
		b.ProductID, _ = Resolve(a.Orders.Columns, ProductIDCandidates)
	}

	if a.Products != nil {
		b.ProductName, _ = Resolve(a.Products.Columns, ProductNameCandidates)
	}
	if a.OrderItems != nil {
		b.Quantity, _ = Resolve(a.OrderItems.Columns, QuantityCandidates)
		b.Subtotal, _ = Resolve(a.OrderItems.Columns, SubtotalCandidates)
	}
	if a.Reviews != nil {
		b.Rating, _ = Resolve(a.Reviews.Columns, ReviewRatingCandidates)
	}
	b.OrderTotal, _ = Resolve(a.Orders.Columns, OrderTotalCandidates)

	return b
}

func firstColumn(columns []string) string {
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}
