// Package store holds well-behaved and deliberately broken domain types
// used to exercise the verifier end to end.
package store

import (
	"slices"
	"time"
)

// 1. Product represents an individual item available for sale.
// Inventory changes with every sale and is not part of the identity.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count" verify:"transient"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Product) Equal(o Product) bool {
	return p.ID == o.ID &&
		p.SKU == o.SKU &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.PriceCents == o.PriceCents &&
		p.CreatedAt.Equal(o.CreatedAt)
}

func (p Product) Hash() int {
	h := int(p.ID)
	h = 31*h + hashString(p.SKU)
	h = 31*h + hashString(p.Name)
	h = 31*h + hashString(p.Description)
	h = 31*h + int(p.PriceCents)
	return 31*h + int(p.CreatedAt.UnixNano())
}

// 2. Customer represents the user placing orders.
// Equal dereferences Address unconditionally, so it must never be nil.
type Customer struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`

	//verify:nonnull
	Address  *string `json:"address"`
	IsActive bool    `json:"is_active"`
}

func (c *Customer) Equal(o *Customer) bool {
	if o == nil {
		return false
	}

	return c.ID == o.ID &&
		c.Email == o.Email &&
		c.FullName == o.FullName &&
		*c.Address == *o.Address &&
		c.IsActive == o.IsActive
}

func (c *Customer) Hash() int64 {
	h := c.ID
	h = 31*h + int64(hashString(c.Email))
	h = 31*h + int64(hashString(c.FullName))
	h = 31*h + int64(hashString(*c.Address))
	if c.IsActive {
		h++
	}
	return h
}

// 3. Order represents a transaction made by a customer.
// The hash is memoized in hash and refreshed by OrderHash.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"` // Has-Many relationship
	OrderedAt  time.Time   `json:"ordered_at"`

	hash int
}

func (o *Order) Equal(other *Order) bool {
	if other == nil {
		return false
	}

	return o.ID == other.ID &&
		o.CustomerID == other.CustomerID &&
		o.Status == other.Status &&
		o.TotalCents == other.TotalCents &&
		slices.Equal(o.Items, other.Items) &&
		o.OrderedAt.Equal(other.OrderedAt)
}

func (o *Order) Hash() int {
	return o.hash
}

// OrderHash computes the value Order memoizes.
func OrderHash(o *Order) int {
	h := int(o.ID)
	h = 31*h + int(o.CustomerID)
	h = 31*h + hashString(string(o.Status))
	h = 31*h + int(o.TotalCents)
	for _, item := range o.Items {
		h = 31*h + item.Hash()
	}
	return 31*h + int(o.OrderedAt.UnixNano())
}

// 4. OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"` // Redundant but useful for history if product name changes
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (i OrderItem) Equal(o OrderItem) bool {
	return i == o
}

func (i OrderItem) Hash() int {
	h := int(i.ProductID)
	h = 31*h + hashString(i.Name)
	h = 31*h + i.Quantity
	return 31*h + int(i.UnitPrice)
}

// 5. OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func hashString(s string) int {
	h := 0
	for _, r := range s {
		h = 31*h + int(r)
	}
	return h
}
