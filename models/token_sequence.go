package models

// TokenSequence is the per-date counter behind order token numbers. One row
// per calendar day, bumped atomically inside the order-creation transaction.
type TokenSequence struct {
	Date      string `gorm:"primaryKey;type:VARCHAR(10)" json:"date"` // YYYY-MM-DD
	LastToken int    `gorm:"not null" json:"last_token"`
}
