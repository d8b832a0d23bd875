package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/money"
)

// goalService handles goal CRUD. Goal balances are mutated exclusively
// through the settlement service; updates here never touch CurrentAmount.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal for a user.
func (s *goalService) CreateGoal(userID uint, name string, amount, currentAmount float64, category string, dueDate time.Time, note string) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !money.IsPositive(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be > 0")
	}
	if currentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		Amount:        money.Round2(amount),
		CurrentAmount: money.Round2(currentAmount),
		Category:      category,
		DueDate:       dueDate,
		Note:          note,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns the user's goals sorted by due date ascending.
func (s *goalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("due_date ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID retrieves a goal by ID without an ownership check. Callers
// that mutate must verify ownership themselves so that a missing goal and
// a foreign goal produce distinct errors.
func (s *goalService) GetGoalByID(goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal replaces a goal's descriptive fields. All of name, amount,
// category and due date are required. CurrentAmount is never touched.
func (s *goalService) UpdateGoal(userID, goalID uint, name string, amount float64, category string, dueDate time.Time, note string) (*models.Goal, error) {
	if name == "" || category == "" || dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, amount, category and due date are required")
	}
	if !money.IsPositive(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be > 0")
	}

	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, apperrors.ErrGoalForbidden
	}

	updates := map[string]interface{}{
		"name":     name,
		"amount":   money.Round2(amount),
		"category": category,
		"due_date": dueDate,
		"note":     note,
	}
	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal removes a goal. Ledger entries that reference the goal
// through their source label are kept: they are audit history and
// independent of the goal's lifecycle.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return apperrors.ErrGoalForbidden
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
