package models

import "time"

// User represents the user model in the database. Savings is a
// denormalized accumulator for non-goal saving/withdrawal transactions,
// independent of any goal balance.
type User struct {
	Base
	Username     string        `gorm:"not null" json:"username"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	Password     string        `gorm:"not null" json:"-"`
	DateOfBirth  time.Time     `gorm:"not null" json:"dob"`
	ProfilePhoto string        `json:"profile_photo,omitempty"`
	Savings      float64       `gorm:"not null;default:0" json:"savings"`
	Goals        []Goal        `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Entries      []LedgerEntry `gorm:"foreignKey:UserID" json:"entries,omitempty"`
}
