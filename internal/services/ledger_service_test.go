package services

import (
	"testing"
	"time"

	"nestegg/internal/models"
	"nestegg/internal/pagination"
	"nestegg/internal/testutil"
)

func TestLedgerService_CreateEntry(t *testing.T) {
	t.Run("successful entry creation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewLedgerService(db)

		entry, err := svc.CreateEntry(user.ID, 1500.505, "Salary", "monthly pay", models.EntryTypeIncome, time.Now())
		testutil.AssertNoError(t, err)
		if entry.ID == 0 {
			t.Error("expected persisted entry ID")
		}
		testutil.AssertAmount(t, 1500.51, entry.Amount)
		if entry.Type != models.EntryTypeIncome {
			t.Errorf("expected income entry, got %s", entry.Type)
		}
	})

	t.Run("saving entry bumps the user's savings accumulator", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUserWithSavings(t, db, 250)
		svc := NewLedgerService(db)

		_, err := svc.CreateEntry(user.ID, 100, "Monthly Savings", "", models.EntryTypeSaving, time.Now())
		testutil.AssertNoError(t, err)

		var reloaded models.User
		testutil.AssertNoError(t, db.First(&reloaded, user.ID).Error)
		testutil.AssertAmount(t, 350, reloaded.Savings)
	})

	t.Run("income and expense entries leave savings untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUserWithSavings(t, db, 250)
		svc := NewLedgerService(db)

		_, err := svc.CreateEntry(user.ID, 100, "Salary", "", models.EntryTypeIncome, time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.CreateEntry(user.ID, 40, "Groceries", "", models.EntryTypeExpense, time.Now())
		testutil.AssertNoError(t, err)

		var reloaded models.User
		testutil.AssertNoError(t, db.First(&reloaded, user.ID).Error)
		testutil.AssertAmount(t, 250, reloaded.Savings)
	})

	t.Run("zero date defaults to now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewLedgerService(db)

		before := time.Now().Add(-time.Minute)
		entry, err := svc.CreateEntry(user.ID, 10, "Coffee", "", models.EntryTypeExpense, time.Time{})
		testutil.AssertNoError(t, err)
		if entry.Date.Before(before) {
			t.Errorf("expected date defaulted to now, got %v", entry.Date)
		}
	})

	t.Run("invalid inputs are rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		svc := NewLedgerService(db)

		_, err := svc.CreateEntry(user.ID, 0, "Salary", "", models.EntryTypeIncome, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateEntry(user.ID, 100, "", "", models.EntryTypeIncome, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateEntry(user.ID, 100, "Salary", "", models.EntryType("loan"), time.Now())
		testutil.AssertAppError(t, err, "INVALID_ENTRY_TYPE")
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewLedgerService(db)

		_, err := svc.CreateEntry(999999, 100, "Salary", "", models.EntryTypeIncome, time.Now())
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestLedgerService_GetUserEntries(t *testing.T) {
	t.Run("entries are returned newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		old := testutil.CreateTestEntryAt(t, db, user.ID, models.EntryTypeIncome, 100, time.Now().AddDate(0, 0, -10))
		recent := testutil.CreateTestEntryAt(t, db, user.ID, models.EntryTypeExpense, 50, time.Now())

		svc := NewLedgerService(db)

		resp, err := svc.GetUserEntries(user.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(resp.Data))
		}
		if resp.Data[0].ID != recent.ID || resp.Data[1].ID != old.ID {
			t.Error("expected entries ordered newest first")
		}
	})

	t.Run("type filter narrows the result", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestEntry(t, db, user.ID, models.EntryTypeIncome, 100)
		testutil.CreateTestEntry(t, db, user.ID, models.EntryTypeExpense, 50)
		testutil.CreateTestEntry(t, db, user.ID, models.EntryTypeExpense, 25)

		svc := NewLedgerService(db)

		expense := models.EntryTypeExpense
		resp, err := svc.GetUserEntries(user.ID, &expense, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 2 {
			t.Fatalf("expected 2 expense entries, got %d", len(resp.Data))
		}
		for _, item := range resp.Data {
			if item.Type != models.EntryTypeExpense {
				t.Errorf("expected only expense entries, got %s", item.Type)
			}
		}
		if resp.TotalItems != 2 {
			t.Errorf("expected total of 2, got %d", resp.TotalItems)
		}
	})

	t.Run("pagination limits the page size", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		user := testutil.CreateTestUser(t, db)
		for i := 0; i < 5; i++ {
			testutil.CreateTestEntry(t, db, user.ID, models.EntryTypeIncome, 10)
		}

		svc := NewLedgerService(db)

		resp, err := svc.GetUserEntries(user.ID, nil, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)
		if len(resp.Data) != 2 {
			t.Errorf("expected page of 2, got %d", len(resp.Data))
		}
		if resp.TotalItems != 5 {
			t.Errorf("expected total of 5, got %d", resp.TotalItems)
		}
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})
}
