package services

import (
	"time"

	"nestegg/internal/models"
	"nestegg/internal/pagination"
)

// SummaryWindow selects the time window for financial summaries.
type SummaryWindow string

const (
	WindowMonthly SummaryWindow = "monthly"
	WindowYearly  SummaryWindow = "yearly"
	WindowOverall SummaryWindow = "overall"
)

// FinancialSummary holds aggregated ledger totals for a user. SavingsTotal
// is always computed over the entire ledger regardless of the window:
// savings accumulate independent of the display period.
type FinancialSummary struct {
	Window          SummaryWindow `json:"window"`
	IncomeTotal     float64       `json:"income_total"`
	ExpensesTotal   float64       `json:"expenses_total"`
	SavingsTotal    float64       `json:"savings_total"`
	RemainingBudget float64       `json:"remaining_budget"`
}

// WithdrawResult is returned by a successful goal withdrawal.
type WithdrawResult struct {
	NewBalance      float64 `json:"new_balance"`
	TransactionID   uint    `json:"transaction_id"`
	GoalName        string  `json:"goal_name"`
	PreviousBalance float64 `json:"previous_balance"`
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string, dateOfBirth time.Time) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	UpdateProfile(userID uint, username string, dateOfBirth *time.Time, profilePhoto *string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// GoalServicer defines the contract for goal CRUD. Balance mutations are
// not part of this interface; they belong to SettlementServicer.
type GoalServicer interface {
	CreateGoal(userID uint, name string, amount, currentAmount float64, category string, dueDate time.Time, note string) (*models.Goal, error)
	GetUserGoals(userID uint) ([]models.Goal, error)
	GetGoalByID(goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, name string, amount float64, category string, dueDate time.Time, note string) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// LedgerServicer defines the contract for the append-only transaction ledger.
type LedgerServicer interface {
	CreateEntry(userID uint, amount float64, source, note string, entryType models.EntryType, date time.Time) (*models.LedgerEntry, error)
	GetUserEntries(userID uint, entryType *models.EntryType, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error)
}

// SettlementServicer is the single entry point for every operation that
// mutates a balance. Each operation applies the balance write and the
// ledger append as one atomic unit: both succeed or neither is visible.
type SettlementServicer interface {
	Contribute(userID, goalID uint, amount float64, window SummaryWindow) (*models.Goal, error)
	Withdraw(userID, goalID uint, amount float64, source, note string) (*WithdrawResult, error)
	WithdrawSavings(userID uint, amount float64, source, note string) (*models.LedgerEntry, error)
}

// SummaryServicer derives financial summaries from the ledger.
type SummaryServicer interface {
	GetSummary(userID uint, window SummaryWindow) (*FinancialSummary, error)
}

// ContactServicer stores contact form submissions.
type ContactServicer interface {
	SubmitMessage(name, email, subject, message string) (*models.ContactMessage, error)
}
