package gen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Dataset bundles the generated tables so they can be written together
type Dataset struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
	Payments  []Payment
	Reviews   []Review
}

// Generate builds a complete dataset: rows customers, products, orders and
// reviews, plus one payment per order.
func Generate(rows int, seed int64) *Dataset {
	g := NewGenerator(seed)
	customers := g.Customers(rows)
	products := g.Products(rows)
	orders := g.Orders(rows, customers, products)

	return &Dataset{
		Customers: customers,
		Products:  products,
		Orders:    orders,
		Payments:  g.Payments(orders),
		Reviews:   g.Reviews(rows, customers, products),
	}
}

// CSV column orders, matching the ingest table definitions
var (
	customerHeader = []string{"customer_id", "name", "email", "phone", "address", "created_at"}
	productHeader  = []string{"product_id", "name", "category", "price", "stock", "created_at"}
	orderHeader    = []string{"order_id", "customer_id", "product_id", "quantity", "order_date", "status", "subtotal", "shipping", "total"}
	paymentHeader  = []string{"payment_id", "order_id", "amount", "method", "status", "payment_date"}
	reviewHeader   = []string{"review_id", "product_id", "customer_id", "rating", "review_text", "review_date"}
)

// WriteCSVFiles writes every dataset table as a CSV file under dir and
// returns the file names in write order.
func (d *Dataset) WriteCSVFiles(dir string) ([]string, error) {
	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"customers.csv", customerHeader, d.customerRecords()},
		{"products.csv", productHeader, d.productRecords()},
		{"orders.csv", orderHeader, d.orderRecords()},
		{"payments.csv", paymentHeader, d.paymentRecords()},
		{"reviews.csv", reviewHeader, d.reviewRecords()},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return written, err
		}
		written = append(written, f.name)
	}
	return written, nil
}

func (d *Dataset) customerRecords() [][]string {
	records := make([][]string, 0, len(d.Customers))
	for _, c := range d.Customers {
		records = append(records, []string{c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt})
	}
	return records
}

func (d *Dataset) productRecords() [][]string {
	records := make([][]string, 0, len(d.Products))
	for _, p := range d.Products {
		records = append(records, []string{
			p.ID, p.Name, p.Category, p.Price.StringFixed(2), strconv.Itoa(p.Stock), p.CreatedAt,
		})
	}
	return records
}

func (d *Dataset) orderRecords() [][]string {
	records := make([][]string, 0, len(d.Orders))
	for _, o := range d.Orders {
		records = append(records, []string{
			o.ID, o.CustomerID, o.ProductID, strconv.Itoa(o.Quantity),
			o.OrderDate.Format(timeLayout), o.Status,
			o.Subtotal.StringFixed(2), o.Shipping.StringFixed(2), o.Total.StringFixed(2),
		})
	}
	return records
}

func (d *Dataset) paymentRecords() [][]string {
	records := make([][]string, 0, len(d.Payments))
	for _, p := range d.Payments {
		records = append(records, []string{
			p.ID, p.OrderID, p.Amount.StringFixed(2), p.Method, p.Status, p.PaymentDate,
		})
	}
	return records
}

func (d *Dataset) reviewRecords() [][]string {
	records := make([][]string, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		records = append(records, []string{
			r.ID, r.ProductID, r.CustomerID, strconv.Itoa(r.Rating), r.Text, r.ReviewDate,
		})
	}
	return records
}

func writeCSV(path string, header []string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	w.Flush()

	return w.Error()
}
