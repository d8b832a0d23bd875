package models

import "time"

// Goal represents a named savings target owned by a user.
// CurrentAmount starts at zero and is mutated only through the
// settlement service. It may exceed Amount: over-funding is allowed
// and the target acts as a floor, not a ceiling.
type Goal struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	Amount        float64   `gorm:"not null" json:"amount"`
	CurrentAmount float64   `gorm:"not null;default:0" json:"current_amount"`
	Category      string    `gorm:"not null" json:"category"`
	DueDate       time.Time `gorm:"not null" json:"due_date"`
	Note          string    `json:"note,omitempty"`
}
