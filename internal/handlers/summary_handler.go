package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/services"
)

// SummaryHandler handles financial summary requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// summaryQuery binds the summary window query parameter.
type summaryQuery struct {
	Window string `form:"window" binding:"omitempty,summary_window"`
}

// GetSummary returns aggregated ledger totals for the user.
// @Summary     Get financial summary
// @Description Income/expense totals for the window, savings over the whole ledger, and the remaining budget
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Time window (monthly/yearly/overall, default overall)"
// @Success     200 {object} services.FinancialSummary "Summary totals"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q summaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.summaryService.GetSummary(userID, services.SummaryWindow(q.Window))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
