package models

import "time"

// Message is a customer inquiry handled by the owner.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"not null" json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CustomerID *uint     `json:"customer_id,omitempty"` // set when sent while logged in
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
