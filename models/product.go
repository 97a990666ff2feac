package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	JuiceBarID  uint    `gorm:"index;not null" json:"juice_bar_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string  `json:"image_url"`
	// Display-only flag: unavailable products can still be carted and ordered.
	Available bool      `gorm:"default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
