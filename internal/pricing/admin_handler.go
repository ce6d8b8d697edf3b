package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/richxcame/transitops/pkg/logger"
	"go.uber.org/zap"
)

// AdminHandler manages dynamic pricing rules. All routes require the admin
// role.
type AdminHandler struct {
	rules RuleStore
	cache RuleCache
}

// NewAdminHandler creates a new pricing rule admin handler. A nil cache
// disables invalidation.
func NewAdminHandler(rules RuleStore, cache RuleCache) *AdminHandler {
	return &AdminHandler{rules: rules, cache: cache}
}

// CreateRule creates a dynamic pricing rule
// POST /api/v1/admin/pricing/rules
func (h *AdminHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.rules.CreateRule(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create pricing rule")
		return
	}

	h.invalidate(c)
	logger.WithContext(c.Request.Context()).Info("pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("rule_name", rule.Name),
	)
	common.CreatedResponse(c, rule)
}

// ListRules returns every rule, active and inactive
// GET /api/v1/admin/pricing/rules
func (h *AdminHandler) ListRules(c *gin.Context) {
	rules, err := h.rules.ListRules(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list pricing rules")
		return
	}

	common.SuccessResponse(c, rules)
}

// UpdateRule partially updates a rule
// PATCH /api/v1/admin/pricing/rules/:id
func (h *AdminHandler) UpdateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid rule id")
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.rules.UpdateRule(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "pricing rule not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update pricing rule")
		return
	}

	h.invalidate(c)
	common.SuccessResponse(c, rule)
}

// DeactivateRule soft-deletes a rule
// DELETE /api/v1/admin/pricing/rules/:id
func (h *AdminHandler) DeactivateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid rule id")
		return
	}

	if err := h.rules.DeactivateRule(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "pricing rule not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to deactivate pricing rule")
		return
	}

	h.invalidate(c)
	common.SuccessResponse(c, gin.H{"deactivated": true})
}

func (h *AdminHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.InvalidatePricingRules(c.Request.Context())
	}
}
