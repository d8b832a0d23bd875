package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nestegg/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithSavings(t, db, 0)
}

// CreateTestUserWithSavings creates a user with the given savings balance.
func CreateTestUserWithSavings(t *testing.T, db *gorm.DB, savings float64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:    fmt.Sprintf("user%d", nextID()),
		Email:       fmt.Sprintf("user%d@test.com", nextID()),
		Password:    string(hash),
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Savings:     savings,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGoal creates a goal with a zero balance.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint) *models.Goal {
	t.Helper()
	return CreateTestGoalWithBalance(t, db, userID, 0)
}

// CreateTestGoalWithBalance creates a goal with the given accumulated balance.
func CreateTestGoalWithBalance(t *testing.T, db *gorm.DB, userID uint, balance float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		Amount:        10000,
		CurrentAmount: balance,
		Category:      "Savings",
		DueDate:       time.Now().AddDate(1, 0, 0),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestEntry creates a ledger entry of the given type and amount,
// dated now.
func CreateTestEntry(t *testing.T, db *gorm.DB, userID uint, entryType models.EntryType, amount float64) *models.LedgerEntry {
	t.Helper()
	return CreateTestEntryAt(t, db, userID, entryType, amount, time.Now())
}

// CreateTestEntryAt creates a ledger entry with an explicit date.
func CreateTestEntryAt(t *testing.T, db *gorm.DB, userID uint, entryType models.EntryType, amount float64, date time.Time) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		UserID: userID,
		Amount: amount,
		Source: fmt.Sprintf("Test Source %d", nextID()),
		Type:   entryType,
		Date:   date,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test ledger entry: %v", err)
	}
	return entry
}
