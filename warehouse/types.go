// Package warehouse holds persistence-shaped types whose gorm tags carry
// meaning for the verifier: `gorm:"-"` fields are not stored and are treated
// as transient.
package warehouse

import (
	"time"
)

// Address represents a physical or billing/shipping address.
type Address struct {
	ID         uint      `gorm:"primaryKey"  json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `gorm:"-"           json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a Address) Equal(o Address) bool {
	return a.ID == o.ID &&
		a.Street == o.Street &&
		a.City == o.City &&
		a.PostalCode == o.PostalCode &&
		a.Country == o.Country &&
		a.CreatedAt.Equal(o.CreatedAt)
}

func (a Address) Hash() uint64 {
	return uint64(a.ID)*31 + uint64(len(a.Street)+len(a.City)+len(a.PostalCode)+len(a.Country))
}

// Product represents a sellable item in the store.
// Stock is computed on load and never persisted, yet Equal compares it.
type Product struct {
	ID    uint   `gorm:"primaryKey"  json:"id"`
	SKU   string `gorm:"uniqueIndex" json:"sku"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // in cents (minor currency unit)
	Stock int    `gorm:"-"           json:"stock"`
}

func (p *Product) Equal(o *Product) bool {
	if o == nil {
		return false
	}

	return p.ID == o.ID && p.SKU == o.SKU && p.Name == o.Name && p.Price == o.Price && p.Stock == o.Stock
}

func (p *Product) Hash() int {
	return int(p.ID)
}

// Order represents a customer's purchase.
type Order struct {
	ID          uint   `gorm:"primaryKey"    json:"id"`
	OrderNumber string `gorm:"uniqueIndex"   json:"order_number"`
	Currency    string `gorm:"default:'USD'" json:"currency"`

	// Embedded address for snapshot (common denormalization practice)
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	PlacedAt *time.Time `json:"placed_at,omitempty"`
}

func (o *Order) Equal(other *Order) bool {
	if other == nil {
		return false
	}

	return o.ID == other.ID && o.OrderNumber == other.OrderNumber
}

func (o *Order) Hash() int {
	return int(o.ID)
}

// OrderItem is a line item within an order. It points back at its order,
// which makes the pair a recursive data structure.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey"        json:"id"`
	OrderID   uint   `json:"order_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // price at time of purchase (in cents)
	Order     *Order `gorm:"foreignKey:OrderID" json:"-"`
}
