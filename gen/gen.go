// Package gen produces the synthetic e-commerce dataset: customers,
// products, orders, payments and reviews, sized and seeded from
// configuration. Generation is deterministic for a given seed.
package gen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	firstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	domains    = []string{"example.com", "email.com", "shopnow.com", "mail.com"}
	streets    = []string{"Oak", "Maple", "Pine", "Cedar", "Elm"}
	cities     = []string{"Springfield", "Rivertown", "Greenville", "Fairview"}
	states     = []string{"CA", "NY", "TX", "WA", "FL"}

	categories = []string{"Electronics", "Books", "Home", "Toys", "Clothing", "Sports", "Beauty"}
	adjectives = []string{"Portable", "Advanced", "Smart", "Eco", "Premium", "Compact", "Durable", "Classic"}
	items      = []string{"Headphones", "Lamp", "Backpack", "Blender", "Watch", "Camera", "Mug", "Sneakers", "Jacket", "Game"}

	orderStatuses      = []string{"pending", "processing", "shipped", "delivered", "cancelled"}
	orderStatusWeights = []int{10, 20, 30, 30, 10}

	paymentMethods       = []string{"credit_card", "paypal", "bank_transfer", "apple_pay"}
	paymentStatuses      = []string{"paid", "pending", "failed"}
	paymentStatusWeights = []int{85, 10, 5}

	reviewTexts = []string{
		"Excellent product, highly recommend!",
		"Good value for money.",
		"Arrived late but works as expected.",
		"Not satisfied with the quality.",
		"Exceeded my expectations.",
		"Will buy again.",
		"Too expensive for what it offers.",
		"Five stars!",
	}
)

// freeShippingThreshold is the subtotal above which shipping is waived
var freeShippingThreshold = decimal.NewFromInt(50)

// Customer is one row of the customers dataset
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt string
}

// Product is one row of the products dataset
type Product struct {
	ID        string
	Name      string
	Category  string
	Price     decimal.Decimal
	Stock     int
	CreatedAt string
}

// Order is one row of the orders dataset. Each order references a single
// product; line items are intentionally not modeled.
type Order struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	OrderDate  time.Time
	Status     string
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Total      decimal.Decimal
}

// Payment is one row of the payments dataset
type Payment struct {
	ID          string
	OrderID     string
	Amount      decimal.Decimal
	Method      string
	Status      string
	PaymentDate string
}

// Review is one row of the reviews dataset
type Review struct {
	ID         string
	ProductID  string
	CustomerID string
	Rating     int
	Text       string
	ReviewDate string
}

// Generator produces the datasets from a single random source
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator. A zero seed derives one from the clock.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

// Customers generates n customer rows with CUST%04d ids
func (g *Generator) Customers(n int) []Customer {
	customers := make([]Customer, 0, n)
	for i := 1; i <= n; i++ {
		first := g.choice(firstNames)
		last := g.choice(lastNames)
		customers = append(customers, Customer{
			ID:    fmt.Sprintf("CUST%04d", i),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, g.choice(domains)),
			Phone: fmt.Sprintf("+1-%d-%d-%d", g.intRange(200, 999), g.intRange(200, 999), g.intRange(1000, 9999)),
			Address: fmt.Sprintf("%d %s St, %s, %s",
				g.intRange(100, 9999), g.choice(streets), g.choice(cities), g.choice(states)),
			CreatedAt: g.daysAgo(1, 2000),
		})
	}
	return customers
}

// Products generates n product rows with PROD%04d ids and prices between
// 5.00 and 499.99
func (g *Generator) Products(n int) []Product {
	products := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, Product{
			ID:        fmt.Sprintf("PROD%04d", i),
			Name:      g.choice(adjectives) + " " + g.choice(items),
			Category:  g.choice(categories),
			Price:     g.money(500, 49999),
			Stock:     g.rng.Intn(501),
			CreatedAt: g.daysAgo(1, 1500),
		})
	}
	return products
}

// Orders generates n order rows referencing the given customers and
// products. Shipping is free above the threshold, otherwise 3.99-9.99.
func (g *Generator) Orders(n int, customers []Customer, products []Product) []Order {
	orders := make([]Order, 0, n)
	for i := 1; i <= n; i++ {
		product := products[g.rng.Intn(len(products))]
		qty := g.intRange(1, 5)
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))

		shipping := decimal.Zero
		if !subtotal.GreaterThan(freeShippingThreshold) {
			shipping = g.money(399, 999)
		}

		orders = append(orders, Order{
			ID:         fmt.Sprintf("ORD%05d", i),
			CustomerID: customers[g.rng.Intn(len(customers))].ID,
			ProductID:  product.ID,
			Quantity:   qty,
			OrderDate:  g.now.AddDate(0, 0, -g.intRange(1, 365)),
			Status:     g.weighted(orderStatuses, orderStatusWeights),
			Subtotal:   subtotal,
			Shipping:   shipping,
			Total:      subtotal.Add(shipping),
		})
	}
	return orders
}

// Payments generates one payment per order, dated 0-7 days after the
// order. Around 5% of payments are short-paid (30-90% of the total).
func (g *Generator) Payments(orders []Order) []Payment {
	payments := make([]Payment, 0, len(orders))
	for _, o := range orders {
		amount := o.Total
		if g.rng.Float64() <= 0.05 {
			factor := decimal.NewFromFloat(0.3 + g.rng.Float64()*0.6)
			amount = o.Total.Mul(factor).Round(2)
		}

		u := uuid.New()
		payments = append(payments, Payment{
			ID:          fmt.Sprintf("PAY-%x", u[:4]),
			OrderID:     o.ID,
			Amount:      amount,
			Method:      g.choice(paymentMethods),
			Status:      g.weighted(paymentStatuses, paymentStatusWeights),
			PaymentDate: o.OrderDate.AddDate(0, 0, g.rng.Intn(8)).Format(timeLayout),
		})
	}
	return payments
}

// Reviews generates n review rows with REV%05d ids and 1-5 star ratings
func (g *Generator) Reviews(n int, customers []Customer, products []Product) []Review {
	reviews := make([]Review, 0, n)
	for i := 1; i <= n; i++ {
		reviews = append(reviews, Review{
			ID:         fmt.Sprintf("REV%05d", i),
			ProductID:  products[g.rng.Intn(len(products))].ID,
			CustomerID: customers[g.rng.Intn(len(customers))].ID,
			Rating:     g.intRange(1, 5),
			Text:       g.choice(reviewTexts),
			ReviewDate: g.daysAgo(1, 800),
		})
	}
	return reviews
}

const timeLayout = "2006-01-02T15:04:05"

func (g *Generator) choice(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// intRange returns a random int in [low, high]
func (g *Generator) intRange(low, high int) int {
	return low + g.rng.Intn(high-low+1)
}

// money returns a random amount between lowCents and highCents, as a
// two-decimal value
func (g *Generator) money(lowCents, highCents int) decimal.Decimal {
	return decimal.New(int64(g.intRange(lowCents, highCents)), -2)
}

// daysAgo returns a timestamp between low and high days in the past
func (g *Generator) daysAgo(low, high int) string {
	return g.now.AddDate(0, 0, -g.intRange(low, high)).Format(timeLayout)
}

// weighted picks a value with probability proportional to its weight
func (g *Generator) weighted(values []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := g.rng.Intn(total)
	for i, w := range weights {
		if pick < w {
			return values[i]
		}
		pick -= w
	}
	return values[len(values)-1]
}
