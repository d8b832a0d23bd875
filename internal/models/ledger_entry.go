package models

import "time"

// EntryType represents the type of a ledger entry
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
	EntryTypeSaving  EntryType = "saving"
)

// LedgerEntry is an immutable record of a monetary event. Entries are
// append-only: there are no update or delete endpoints for them.
// Withdrawals are stored with a negative amount.
type LedgerEntry struct {
	Base
	UserID uint      `gorm:"not null;index" json:"user_id"`
	Amount float64   `gorm:"not null" json:"amount"`
	Source string    `gorm:"not null" json:"source"`
	Note   string    `json:"note,omitempty"`
	Type   EntryType `gorm:"not null" json:"type"`
	Date   time.Time `gorm:"not null" json:"date"`
}
