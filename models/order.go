package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses (pickup-counter flow)
	OrderStatusPending    OrderStatus = "pending"    // Placed, not yet picked up by staff
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusReady      OrderStatus = "ready"      // Waiting at the counter
	OrderStatusCompleted  OrderStatus = "completed"  // Handed over
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before it was ready

	// Payment methods
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// statusTransitions is the pipeline staff move orders through. Anything not
// listed here is an illegal transition.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusCompleted},
	OrderStatusCancelled:  {},
	OrderStatusCompleted:  {},
}

// ValidStatus reports whether s names one of the five order statuses.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the pipeline allows moving from -> to.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s OrderStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// StatusPriority orders the staff pending list: oldest actionable bucket first.
func StatusPriority(s OrderStatus) int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusProcessing:
		return 1
	case OrderStatusReady:
		return 2
	default:
		return 3
	}
}

type Order struct {
	OrderID    uint `gorm:"primaryKey" json:"order_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	User       User `gorm:"foreignKey:CustomerID" json:"user"`
	JuiceBarID uint `gorm:"index;not null" json:"juice_bar_id"`
	// Daily pickup number; unique per calendar day, not globally.
	TokenNumber   int           `gorm:"not null" json:"token_number"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20);not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalAmount   float64       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// OrderItem is a snapshot taken at checkout; neither the price nor the
// product name changes after creation even when the product does.
type OrderItem struct {
	OrderItemID uint    `gorm:"primaryKey" json:"order_item_id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"not null" json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}
