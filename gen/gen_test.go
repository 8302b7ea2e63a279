package gen

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestGenerate(t *testing.T) {
	dataset := Generate(50, 42)

	t.Run("RowCounts", func(t *testing.T) {
		assert.Equal(t, 50, len(dataset.Customers))
		assert.Equal(t, 50, len(dataset.Products))
		assert.Equal(t, 50, len(dataset.Orders))
		assert.Equal(t, 50, len(dataset.Reviews))
		// One payment per order
		assert.Equal(t, len(dataset.Orders), len(dataset.Payments))
	})

	t.Run("IDFormats", func(t *testing.T) {
		assert.Equal(t, "CUST0001", dataset.Customers[0].ID)
		assert.Equal(t, "PROD0001", dataset.Products[0].ID)
		assert.Equal(t, "ORD00001", dataset.Orders[0].ID)
		assert.Equal(t, "REV00001", dataset.Reviews[0].ID)
		assert.True(t, strings.HasPrefix(dataset.Payments[0].ID, "PAY-"))
		assert.Equal(t, len("PAY-")+8, len(dataset.Payments[0].ID))
	})

	t.Run("ReferentialIntegrity", func(t *testing.T) {
		customerIDs := map[string]bool{}
		for _, c := range dataset.Customers {
			customerIDs[c.ID] = true
		}
		productIDs := map[string]bool{}
		for _, p := range dataset.Products {
			productIDs[p.ID] = true
		}
		for _, o := range dataset.Orders {
			assert.True(t, customerIDs[o.CustomerID])
			assert.True(t, productIDs[o.ProductID])
		}
		for _, r := range dataset.Reviews {
			assert.True(t, customerIDs[r.CustomerID])
			assert.True(t, productIDs[r.ProductID])
		}
	})

	t.Run("OrderArithmetic", func(t *testing.T) {
		threshold := decimal.NewFromInt(50)
		for _, o := range dataset.Orders {
			expected := o.Subtotal.Add(o.Shipping)
			assert.True(t, o.Total.Equal(expected))
			if o.Subtotal.GreaterThan(threshold) {
				assert.True(t, o.Shipping.IsZero())
			} else {
				assert.True(t, o.Shipping.IsPositive())
			}
			assert.True(t, o.Quantity >= 1 && o.Quantity <= 5)
		}
	})

	t.Run("PriceRange", func(t *testing.T) {
		low := decimal.New(500, -2)
		high := decimal.New(49999, -2)
		for _, p := range dataset.Products {
			assert.True(t, p.Price.GreaterThanOrEqual(low))
			assert.True(t, p.Price.LessThanOrEqual(high))
		}
	})

	t.Run("RatingRange", func(t *testing.T) {
		for _, r := range dataset.Reviews {
			assert.True(t, r.Rating >= 1 && r.Rating <= 5)
		}
	})
}

func TestGenerateDeterminism(t *testing.T) {
	a := Generate(10, 7)
	b := Generate(10, 7)

	// Payment ids come from uuid and timestamps from the clock; every
	// random-source-driven field must match for the same seed.
	for i := range a.Customers {
		assert.Equal(t, a.Customers[i].Name, b.Customers[i].Name)
		assert.Equal(t, a.Customers[i].Email, b.Customers[i].Email)
		assert.Equal(t, a.Customers[i].Address, b.Customers[i].Address)
	}
	for i := range a.Products {
		assert.Equal(t, a.Products[i].Name, b.Products[i].Name)
		assert.True(t, a.Products[i].Price.Equal(b.Products[i].Price))
	}
	for i := range a.Orders {
		assert.Equal(t, a.Orders[i].CustomerID, b.Orders[i].CustomerID)
		assert.Equal(t, a.Orders[i].Quantity, b.Orders[i].Quantity)
		assert.True(t, a.Orders[i].Total.Equal(b.Orders[i].Total))
	}
}

func TestWriteCSVFiles(t *testing.T) {
	dir := t.TempDir()
	dataset := Generate(5, 1)

	files, err := dataset.WriteCSVFiles(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{"customers.csv", "products.csv", "orders.csv", "payments.csv", "reviews.csv"}, files)

	f, err := os.Open(filepath.Join(dir, "orders.csv"))
	assert.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, orderHeader, records[0])
	assert.Equal(t, 6, len(records)) // header + 5 rows
	// Money columns carry two decimal places
	assert.Contains(t, records[1][6], ".")
}
