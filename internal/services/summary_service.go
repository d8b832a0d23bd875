package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/money"
)

// summaryService derives income/expense/savings totals from the ledger.
// Pure read: no side effects.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetSummary computes ledger totals for the user. Income and expenses
// are summed within the window; savings are summed over the entire
// ledger regardless of the window, since savings accumulate independent
// of the display period. The remaining budget is income minus expenses
// minus savings and is the ceiling for goal contributions.
func (s *summaryService) GetSummary(userID uint, window SummaryWindow) (*FinancialSummary, error) {
	if window == "" {
		window = WindowOverall
	}

	incomeTotal, err := s.sumEntries(userID, models.EntryTypeIncome, window)
	if err != nil {
		return nil, err
	}
	expensesTotal, err := s.sumEntries(userID, models.EntryTypeExpense, window)
	if err != nil {
		return nil, err
	}
	savingsTotal, err := s.sumEntries(userID, models.EntryTypeSaving, WindowOverall)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		Window:          window,
		IncomeTotal:     incomeTotal,
		ExpensesTotal:   expensesTotal,
		SavingsTotal:    savingsTotal,
		RemainingBudget: money.Round2(incomeTotal - expensesTotal - savingsTotal),
	}, nil
}

func (s *summaryService) sumEntries(userID uint, entryType models.EntryType, window SummaryWindow) (float64, error) {
	q := s.db.Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, entryType)

	if start, end, ok := windowBounds(window, time.Now()); ok {
		q = q.Where("date BETWEEN ? AND ?", start, end)
	}

	var total float64
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return money.Round2(total), nil
}

// windowBounds returns the inclusive bounds of the current calendar
// month or year. The overall window has no bounds.
func windowBounds(window SummaryWindow, now time.Time) (time.Time, time.Time, bool) {
	switch window {
	case WindowMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, -1)
		end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case WindowYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), 12, 31, 23, 59, 59, 999999999, now.Location())
		return start, end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
