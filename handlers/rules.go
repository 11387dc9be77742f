package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rulesRepo "shutterbook/database/repository/rules"
	"shutterbook/models"
	"shutterbook/services/booking"
	"shutterbook/utils"
)

// RulesHandler exposes the per-photographer booking-rules configuration.
type RulesHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewRulesHandler(svc booking.BookingService, logger *zap.Logger) *RulesHandler {
	return &RulesHandler{Svc: svc, Logger: logger}
}

// GetRules handles GET /api/photographers/:id/booking-rules.
func (h *RulesHandler) GetRules(c *gin.Context) {
	photographerID := c.Param("id")

	rules, err := h.Svc.GetRules(photographerID)
	if errors.Is(err, rulesRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "booking rules not found", "")
		return
	}
	if err != nil {
		h.Logger.Error("failed to fetch booking rules", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// PutRules handles PUT /api/photographers/:id/booking-rules. The document is
// validated before it is stored so a malformed rule set never reaches the
// evaluation engine.
func (h *RulesHandler) PutRules(c *gin.Context) {
	photographerID := c.Param("id")

	var rules models.BookingRules
	if err := c.ShouldBindJSON(&rules); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	rules.PhotographerID = photographerID

	if err := h.Svc.UpsertRules(&rules); err != nil {
		var ruleErr *booking.RuleError
		if errors.As(err, &ruleErr) {
			utils.JSONError(c, http.StatusUnprocessableEntity, ruleErr.Code, ruleErr.Message)
			return
		}
		h.Logger.Error("failed to store booking rules", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// DeleteRules handles DELETE /api/photographers/:id/booking-rules.
func (h *RulesHandler) DeleteRules(c *gin.Context) {
	photographerID := c.Param("id")

	if err := h.Svc.DeleteRules(photographerID); err != nil {
		h.Logger.Error("failed to delete booking rules", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	c.Status(http.StatusNoContent)
}
