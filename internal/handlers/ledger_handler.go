package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
	"nestegg/internal/pagination"
	"nestegg/internal/services"
)

// LedgerHandler handles transaction ledger requests.
type LedgerHandler struct {
	ledgerService     services.LedgerServicer
	settlementService services.SettlementServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, settlementService services.SettlementServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, settlementService: settlementService}
}

// CreateEntryRequest represents the request payload for recording a transaction.
type CreateEntryRequest struct {
	Amount FlexibleAmount `json:"amount"`
	Source string         `json:"source" binding:"required,min=1,max=200"`
	Note   string         `json:"note" binding:"max=500"`
	Type   string         `json:"type" binding:"required,entry_type"`
	Date   time.Time      `json:"date"`
}

// GeneralWithdrawRequest represents the request payload for withdrawing
// from the user's general savings pool.
type GeneralWithdrawRequest struct {
	Amount FlexibleAmount `json:"amount"`
	Source string         `json:"source"`
	Note   string         `json:"note" binding:"max=500"`
}

// CreateEntry records a new ledger entry.
// @Summary     Record a transaction
// @Description Append an income, expense or saving entry to the ledger
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.ledgerService.CreateEntry(userID, float64(req.Amount), req.Source, req.Note, models.EntryType(req.Type), req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction added successfully",
		"transaction": entry,
	})
}

// GetEntries lists the user's ledger entries, newest first.
// @Summary     Get transactions
// @Description Get a paginated list of ledger entries, optionally filtered by type
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by type (income/expense/saving)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.LedgerEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *LedgerHandler) GetEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var entryType *models.EntryType
	if v := c.Query("type"); v != "" {
		t := models.EntryType(v)
		if t != models.EntryTypeIncome && t != models.EntryTypeExpense && t != models.EntryTypeSaving {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'income', 'expense' or 'saving'"))
			return
		}
		entryType = &t
	}

	result, err := h.ledgerService.GetUserEntries(userID, entryType, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GeneralWithdraw withdraws from the user's general savings pool.
// @Summary     Withdraw from savings
// @Description Remove funds from the general savings pool and record an expense entry
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GeneralWithdrawRequest true "Withdrawal amount, source and optional note"
// @Success     201 {object} map[string]interface{} "Withdrawal recorded"
// @Failure     400 {object} ErrorResponse "Validation errors or insufficient savings"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/withdraw [post]
func (h *LedgerHandler) GeneralWithdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GeneralWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.settlementService.WithdrawSavings(userID, float64(req.Amount), req.Source, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Withdrawal successful",
		"transaction": entry,
	})
}
