package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/money"
)

// settlementService applies every balance-mutating operation as one
// database transaction: the balance write first, then the ledger append.
// If the append fails the transaction rolls back and neither write is
// observable. Balance writes are conditional on the value read inside
// the transaction, so two concurrent withdrawals can never both succeed
// against the same funds.
type settlementService struct {
	db             *gorm.DB
	summaryService SummaryServicer
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, summaryService SummaryServicer) SettlementServicer {
	return &settlementService{db: db, summaryService: summaryService}
}

// Contribute adds amount to a goal's balance and records a saving-type
// ledger entry. The amount is capped by the user's remaining budget for
// the chosen window. The goal balance is not clamped to the target:
// over-funding is allowed. The user's legacy savings accumulator is
// bumped in the same transaction, mirroring what posting a saving entry
// does.
func (s *settlementService) Contribute(userID, goalID uint, amount float64, window SummaryWindow) (*models.Goal, error) {
	if !money.IsPositive(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be > 0")
	}
	if window == "" {
		window = WindowOverall
	}

	summary, err := s.summaryService.GetSummary(userID, window)
	if err != nil {
		return nil, err
	}

	contribution := money.Round2(amount)
	if contribution > summary.RemainingBudget {
		return nil, apperrors.WithDetails(apperrors.ErrBudgetExceeded, map[string]interface{}{
			"available": summary.RemainingBudget,
			"requested": contribution,
		})
	}

	var result *models.Goal
	err = s.db.Transaction(func(tx *gorm.DB) error {
		goal, txErr := s.lockGoal(tx, userID, goalID)
		if txErr != nil {
			return txErr
		}

		newBalance := money.Round2(goal.CurrentAmount + contribution)
		if txErr := s.writeGoalBalance(tx, goal, newBalance); txErr != nil {
			return txErr
		}

		entry := &models.LedgerEntry{
			UserID: userID,
			Amount: contribution,
			Source: "Goal Contribution",
			Type:   models.EntryTypeSaving,
			Date:   time.Now(),
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("savings", gorm.Expr("savings + ?", contribution))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}

		goal.CurrentAmount = newBalance
		result = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw removes amount from a goal's balance and records an
// expense-type ledger entry. All field errors are collected before any
// mutation and reported together keyed by field.
func (s *settlementService) Withdraw(userID, goalID uint, amount float64, source, note string) (*WithdrawResult, error) {
	fields := make(map[string]string)
	if !money.IsPositive(amount) {
		fields["amount"] = "Amount must be a positive number"
	}
	if strings.TrimSpace(source) == "" {
		fields["source"] = "Source is required"
	}
	if userID == 0 {
		fields["userId"] = "A valid user is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, fields)
	}

	var result *WithdrawResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if txErr := tx.First(&goal, goalID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if goal.UserID != userID {
			return apperrors.WithDetails(apperrors.ErrGoalForbidden, map[string]interface{}{
				"goal_owner":      goal.UserID,
				"requesting_user": userID,
			})
		}

		// Sufficiency check with two-decimal rounding tolerance.
		available := money.Round2(goal.CurrentAmount)
		requested := money.Round2(amount)
		if available < requested {
			return apperrors.WithDetails(apperrors.ErrInsufficientFunds, map[string]interface{}{
				"available":  available,
				"requested":  requested,
				"difference": money.Round2(requested - available),
			})
		}

		newBalance := money.Round2(available - requested)
		if txErr := s.writeGoalBalance(tx, &goal, newBalance); txErr != nil {
			return txErr
		}

		entry := &models.LedgerEntry{
			UserID: userID,
			Amount: -requested,
			Source: fmt.Sprintf("Withdrawal from %s: %s", goal.Name, source),
			Note:   note,
			Type:   models.EntryTypeExpense,
			Date:   time.Now(),
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		result = &WithdrawResult{
			NewBalance:      newBalance,
			TransactionID:   entry.ID,
			GoalName:        goal.Name,
			PreviousBalance: available,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// WithdrawSavings removes amount from the user's general savings pool
// and records an expense-type ledger entry. The savings pool is
// independent of any goal balance.
func (s *settlementService) WithdrawSavings(userID uint, amount float64, source, note string) (*models.LedgerEntry, error) {
	fields := make(map[string]string)
	if !money.IsPositive(amount) {
		fields["amount"] = "Amount must be a positive number"
	}
	if strings.TrimSpace(source) == "" {
		fields["source"] = "Source is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, fields)
	}

	var result *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.First(&user, userID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		available := money.Round2(user.Savings)
		requested := money.Round2(amount)
		if available < requested {
			return apperrors.WithDetails(apperrors.ErrInsufficientSavings, map[string]interface{}{
				"available": available,
			})
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND savings = ?", user.ID, user.Savings).
			Update("savings", money.Round2(available-requested))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrConcurrentUpdate
		}

		entry := &models.LedgerEntry{
			UserID: userID,
			Amount: -math.Abs(requested),
			Source: source,
			Note:   note,
			Type:   models.EntryTypeExpense,
			Date:   time.Now(),
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockGoal loads a goal inside the transaction and verifies ownership.
func (s *settlementService) lockGoal(tx *gorm.DB, userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := tx.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if goal.UserID != userID {
		return nil, apperrors.WithDetails(apperrors.ErrGoalForbidden, map[string]interface{}{
			"goal_owner":      goal.UserID,
			"requesting_user": userID,
		})
	}
	return &goal, nil
}

// writeGoalBalance sets the goal balance conditional on the value read
// inside the transaction. Zero rows affected means another request
// changed the balance first; the transaction aborts rather than
// double-spend.
func (s *settlementService) writeGoalBalance(tx *gorm.DB, goal *models.Goal, newBalance float64) error {
	res := tx.Model(&models.Goal{}).
		Where("id = ? AND current_amount = ?", goal.ID, goal.CurrentAmount).
		Update("current_amount", newBalance)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConcurrentUpdate
	}
	return nil
}
