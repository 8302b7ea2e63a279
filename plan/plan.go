package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/shopprobe"
)

// ErrSchemaInsufficient is returned when the mandatory tables are missing;
// no join plan exists without customers and orders.
var ErrSchemaInsufficient = errors.New("database must have at least 'customers' and 'orders' tables")

// RowLimit caps result cardinality in every tier. It is a display-sample
// limit, not a correctness guarantee.
const RowLimit = 50

// Tier identifies one of the fixed join strategies, ordered by descending
// completeness.
type Tier string

const (
	TierFull     Tier = "full"
	TierDegraded Tier = "degraded"
	TierMinimal  Tier = "minimal"
)

// Plan is a fully rendered query. Once built it has no mutable state: the
// same snapshot always yields byte-identical SQL.
type Plan struct {
	Tier    Tier
	SQL     string
	Columns []string // projected column aliases, in SELECT order
}

// builder pairs a tier with its applicability predicate. Builders are
// evaluated in declaration order and the first applicable one wins, which
// keeps the tie-break policy explicit and testable apart from rendering.
type builder struct {
	tier       Tier
	applicable func(*Analysis) bool
	render     func(*Analysis) *Plan
}

var builders = []builder{
	{TierFull, fullApplicable, renderFull},
	{TierDegraded, degradedApplicable, renderDegraded},
	{TierMinimal, func(*Analysis) bool { return true }, renderMinimal},
}

// Build selects the richest applicable tier for the snapshot and renders
// its query. It only renders text; nothing is executed here.
func Build(snapshot *shopprobe.Snapshot) (*Plan, error) {
	analysis, err := Analyze(snapshot)
	if err != nil {
		return nil, err
	}

	for _, b := range builders {
		if b.applicable(analysis) {
			return b.render(analysis), nil
		}
	}
	// The minimal tier accepts everything Analyze accepts.
	panic("plan: no applicable tier")
}

// Full tier: line-item granularity. Needs an order_items table and a
// resolvable product name (which implies a products table).
func fullApplicable(a *Analysis) bool {
	return a.OrderItems != nil && a.Binding.ProductName != ""
}

func renderFull(a *Analysis) *Plan {
	b := a.Binding
	productID := b.ProductID
	if productID == "" {
		productID = "product_id"
	}
	// Quantity and subtotal fall back to literal column names when
	// unresolved. If those names do not exist in order_items the query
	// fails at execution time; that gap is deliberate and surfaces as a
	// reported store error, not a silent correction.
	quantity := b.Quantity
	if quantity == "" {
		quantity = "quantity"
	}
	subtotal := b.Subtotal
	if subtotal == "" {
		subtotal = "subtotal"
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	fmt.Fprintf(&sb, "    c.%s AS customer_id,\n", b.CustomerID)
	sb.WriteString("    c.name AS customer_name,\n")
	fmt.Fprintf(&sb, "    p.%s AS product_name,\n", b.ProductName)
	fmt.Fprintf(&sb, "    o.%s AS order_id,\n", b.OrderID)
	sb.WriteString("    o.order_date,\n")
	fmt.Fprintf(&sb, "    oi.%s AS quantity,\n", quantity)
	fmt.Fprintf(&sb, "    oi.%s AS subtotal,\n", subtotal)
	sb.WriteString("    " + ratingProjection(a) + "\n")
	fmt.Fprintf(&sb, "FROM %s c\n", a.Customers.Name)
	fmt.Fprintf(&sb, "JOIN %s o ON c.%s = o.customer_id\n", a.Orders.Name, b.CustomerID)
	fmt.Fprintf(&sb, "JOIN %s oi ON o.%s = oi.order_id\n", a.OrderItems.Name, b.OrderID)
	fmt.Fprintf(&sb, "LEFT JOIN %s p ON oi.product_id = p.%s\n", a.Products.Name, productID)
	writeReviewsJoin(&sb, a, productID)
	fmt.Fprintf(&sb, "LIMIT %d", RowLimit)

	return &Plan{
		Tier:    TierFull,
		SQL:     sb.String(),
		Columns: itemColumns,
	}
}

// Degraded tier: no line items, but orders carry a product id and the
// products table can name it. One order row counts as one unit.
func degradedApplicable(a *Analysis) bool {
	b := a.Binding
	return b.ProductID != "" && a.Products != nil && b.ProductName != ""
}

func renderDegraded(a *Analysis) *Plan {
	b := a.Binding
	subtotal := "o." + b.OrderTotal
	if b.OrderTotal == "" {
		subtotal = "o.total_amount"
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	fmt.Fprintf(&sb, "    c.%s AS customer_id,\n", b.CustomerID)
	sb.WriteString("    c.name AS customer_name,\n")
	fmt.Fprintf(&sb, "    p.%s AS product_name,\n", b.ProductName)
	fmt.Fprintf(&sb, "    o.%s AS order_id,\n", b.OrderID)
	sb.WriteString("    o.order_date,\n")
	sb.WriteString("    1 AS quantity,\n")
	fmt.Fprintf(&sb, "    %s AS subtotal,\n", subtotal)
	sb.WriteString("    " + ratingProjection(a) + "\n")
	fmt.Fprintf(&sb, "FROM %s c\n", a.Customers.Name)
	fmt.Fprintf(&sb, "JOIN %s o ON c.%s = o.customer_id\n", a.Orders.Name, b.CustomerID)
	fmt.Fprintf(&sb, "LEFT JOIN %s p ON o.%s = p.%s\n", a.Products.Name, b.ProductID, b.ProductID)
	writeReviewsJoin(&sb, a, b.ProductID)
	fmt.Fprintf(&sb, "LIMIT %d", RowLimit)

	return &Plan{
		Tier:    TierDegraded,
		SQL:     sb.String(),
		Columns: itemColumns,
	}
}

// Minimal tier: customers and orders only. Always applicable once Analyze
// has accepted the snapshot.
func renderMinimal(a *Analysis) *Plan {
	b := a.Binding
	total := b.OrderTotal
	if total == "" {
		total = "total_amount"
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	fmt.Fprintf(&sb, "    c.%s AS customer_id,\n", b.CustomerID)
	sb.WriteString("    c.name AS customer_name,\n")
	fmt.Fprintf(&sb, "    o.%s AS order_id,\n", b.OrderID)
	sb.WriteString("    o.order_date,\n")
	fmt.Fprintf(&sb, "    o.%s AS total_amount\n", total)
	fmt.Fprintf(&sb, "FROM %s c\n", a.Customers.Name)
	fmt.Fprintf(&sb, "LEFT JOIN %s o ON c.%s = o.customer_id\n", a.Orders.Name, b.CustomerID)
	fmt.Fprintf(&sb, "LIMIT %d", RowLimit)

	return &Plan{
		Tier:    TierMinimal,
		SQL:     sb.String(),
		Columns: []string{"customer_id", "customer_name", "order_id", "order_date", "total_amount"},
	}
}

var itemColumns = []string{
	"customer_id", "customer_name", "product_name", "order_id",
	"order_date", "quantity", "subtotal", "rating",
}

func ratingProjection(a *Analysis) string {
	if a.Reviews != nil && a.Binding.Rating != "" {
		return fmt.Sprintf("r.%s AS rating", a.Binding.Rating)
	}
	return "NULL AS rating"
}

// writeReviewsJoin joins reviews on customer and product when a reviews
// table exists. Without one the rating projection is already NULL and the
// join is omitted entirely.
func writeReviewsJoin(sb *strings.Builder, a *Analysis, productID string) {
	if a.Reviews == nil {
		return
	}
	fmt.Fprintf(sb, "LEFT JOIN %s r ON r.customer_id = c.%s AND r.product_id = p.%s\n",
		a.Reviews.Name, a.Binding.CustomerID, productID)
}
