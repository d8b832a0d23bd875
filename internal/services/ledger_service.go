package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/money"
	"nestegg/internal/pagination"
)

// ledgerService handles the append-only transaction ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// CreateEntry appends a new ledger entry. Saving-type entries bump the
// user's savings accumulator in the same transaction.
func (s *ledgerService) CreateEntry(userID uint, amount float64, source, note string, entryType models.EntryType, date time.Time) (*models.LedgerEntry, error) {
	if !money.IsPositive(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be > 0")
	}
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source is required")
	}
	switch entryType {
	case models.EntryTypeIncome, models.EntryTypeExpense, models.EntryTypeSaving:
	default:
		return nil, apperrors.ErrInvalidEntryType
	}

	if date.IsZero() {
		date = time.Now()
	}

	entry := &models.LedgerEntry{
		UserID: userID,
		Amount: money.Round2(amount),
		Source: source,
		Note:   note,
		Type:   entryType,
		Date:   date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.First(&user, userID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if entryType == models.EntryTypeSaving {
			res := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("savings", gorm.Expr("savings + ?", entry.Amount))
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetUserEntries returns a paginated list of the user's ledger entries,
// newest first, optionally filtered by type.
func (s *ledgerService) GetUserEntries(userID uint, entryType *models.EntryType, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.LedgerEntry{}).Where("user_id = ?", userID)
	if entryType != nil {
		base = base.Where("type = ?", *entryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
