package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// IsStaff reports whether the role works the order pipeline.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleOwner || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	// Home location for employees; nil for customers.
	JuiceBarID *uint       `json:"juice_bar_id,omitempty"`
	Orders     []Order     `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	Cart       []CartEntry `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
