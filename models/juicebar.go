package models

import "time"

type JuiceBar struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Products  []Product `gorm:"foreignKey:JuiceBarID" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
