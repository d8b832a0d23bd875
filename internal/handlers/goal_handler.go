package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/services"
)

// GoalHandler handles goal CRUD and settlement requests.
type GoalHandler struct {
	goalService       services.GoalServicer
	settlementService services.SettlementServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, settlementService services.SettlementServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, settlementService: settlementService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name          string    `json:"name" binding:"required,min=1,max=100"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	CurrentAmount float64   `json:"current_amount" binding:"omitempty,gte=0"`
	Category      string    `json:"category" binding:"required,min=1,max=100"`
	DueDate       time.Time `json:"due_date" binding:"required"`
	Note          string    `json:"note" binding:"max=500"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
// All descriptive fields are required; the accumulated balance cannot be
// edited through this endpoint.
type UpdateGoalRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=100"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Category string    `json:"category" binding:"required,min=1,max=100"`
	DueDate  time.Time `json:"due_date" binding:"required"`
	Note     string    `json:"note" binding:"max=500"`
}

// ContributeRequest represents the request payload for a goal contribution.
type ContributeRequest struct {
	Amount FlexibleAmount `json:"amount"`
	Window string         `json:"window" binding:"omitempty,summary_window"`
}

// WithdrawRequest represents the request payload for a goal withdrawal.
type WithdrawRequest struct {
	Amount FlexibleAmount `json:"amount"`
	Source string         `json:"source"`
	Note   string         `json:"note" binding:"max=500"`
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create a goal
// @Description Create a new savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} map[string]interface{} "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, req.Name, req.Amount, req.CurrentAmount, req.Category, req.DueDate, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists the authenticated user's goals sorted by due date.
// @Summary     Get goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Goals sorted by due date ascending"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// UpdateGoal replaces a goal's descriptive fields.
// @Summary     Update a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body UpdateGoalRequest true "Goal fields"
// @Success     200 {object} map[string]interface{} "Updated goal"
// @Failure     400 {object} ErrorResponse "Missing field or bad date"
// @Failure     403 {object} ErrorResponse "Not the goal owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Name, req.Amount, req.Category, req.DueDate, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal updated successfully",
		"goal":    goal,
	})
}

// DeleteGoal removes a goal. Associated ledger entries are kept.
// @Summary     Delete a goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} map[string]interface{} "Goal deleted"
// @Failure     403 {object} ErrorResponse "Not the goal owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// Contribute adds funds to a goal, bounded by the remaining budget.
// @Summary     Contribute to a goal
// @Description Add funds to a goal and record a saving-type ledger entry
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body ContributeRequest true "Contribution amount and optional budget window"
// @Success     200 {object} map[string]interface{} "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid amount or budget exceeded"
// @Failure     403 {object} ErrorResponse "Not the goal owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/contribute [put]
func (h *GoalHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.settlementService.Contribute(userID, goalID, float64(req.Amount), services.SummaryWindow(req.Window))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contribution added successfully",
		"goal":    goal,
	})
}

// Withdraw removes funds from a goal.
// @Summary     Withdraw from a goal
// @Description Remove funds from a goal and record an expense-type ledger entry
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body WithdrawRequest true "Withdrawal amount, source and optional note"
// @Success     200 {object} map[string]interface{} "New balance and created entry"
// @Failure     400 {object} ErrorResponse "Validation errors or insufficient funds"
// @Failure     403 {object} ErrorResponse "Not the goal owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/withdraw [post]
func (h *GoalHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.settlementService.Withdraw(userID, goalID, float64(req.Amount), req.Source, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Withdrawal successful",
		"new_balance":    result.NewBalance,
		"transaction_id": result.TransactionID,
		"details": gin.H{
			"goal_name":        result.GoalName,
			"previous_balance": result.PreviousBalance,
		},
	})
}
