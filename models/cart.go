package models

import "time"

// CartEntry holds a customer's pending selection of one product. Quantity is
// counted on the row itself; adding the same product again bumps the count
// instead of inserting a duplicate row.
type CartEntry struct {
	CartID     uint      `gorm:"primaryKey" json:"cart_id"`
	CustomerID uint      `gorm:"uniqueIndex:idx_cart_customer_product;not null" json:"customer_id"`
	ProductID  uint      `gorm:"uniqueIndex:idx_cart_customer_product;not null" json:"product_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}

// CartLine is the consolidated read-side view of a cart entry, joined with
// the product it points at.
type CartLine struct {
	CartID      uint    `json:"cart_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}
