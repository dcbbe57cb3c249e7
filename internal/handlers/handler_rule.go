package handlers

import (
	"net/http"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ruleHandler handles HTTP requests related to rules.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

func registerRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	h := &ruleHandler{ruleService: ruleService}
	admins := middleware.RequireRole(domain.RoleAdmin)

	rules := rg.Group("/rules")
	{
		rules.GET("", h.listRules)
		rules.GET("/:name", h.getRule)
		rules.PUT("/:name", admins, h.upsertRule)
		rules.PATCH("/:name/active", admins, h.setRuleActive)
		rules.DELETE("/:name", admins, h.deleteRule)
	}
}

// listRules godoc
// @Summary List rules
// @Tags rules
// @Produce json
// @Param activeOnly query bool false "Only active rules"
// @Param frequency query string false "MONTHLY or QUARTERLY"
// @Success 200 {array} domain.Rule
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules [get]
func (h *ruleHandler) listRules(c *gin.Context) {
	var params dto.ListRulesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	filter := portsrepo.RuleFilter{ActiveOnly: params.ActiveOnly}
	if params.Frequency != "" {
		f := domain.Frequency(params.Frequency)
		filter.Frequency = &f
	}
	rules, err := h.ruleService.ListRules(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// getRule godoc
// @Summary Get a rule by name
// @Tags rules
// @Produce json
// @Param name path string true "Rule name"
// @Success 200 {object} domain.Rule
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{name} [get]
func (h *ruleHandler) getRule(c *gin.Context) {
	rule, err := h.ruleService.GetRule(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err, "Failed to get rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// upsertRule godoc
// @Summary Create or replace a rule
// @Description Conditions may only test client attributes from the allow-list.
// @Tags rules
// @Accept json
// @Produce json
// @Param name path string true "Rule name"
// @Param rule body dto.UpsertRuleRequest true "Rule"
// @Success 200 {object} domain.Rule
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{name} [put]
func (h *ruleHandler) upsertRule(c *gin.Context) {
	var req dto.UpsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	rule, err := h.ruleService.UpsertRule(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		respondError(c, err, "Failed to store rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// setRuleActive godoc
// @Summary Enable or disable a rule
// @Tags rules
// @Accept json
// @Param name path string true "Rule name"
// @Param body body dto.SetRuleActiveRequest true "Active flag"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{name}/active [patch]
func (h *ruleHandler) setRuleActive(c *gin.Context) {
	var req dto.SetRuleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if err := h.ruleService.SetRuleActive(c.Request.Context(), c.Param("name"), *req.Active); err != nil {
		respondError(c, err, "Failed to toggle rule")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteRule godoc
// @Summary Delete a rule
// @Tags rules
// @Param name path string true "Rule name"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /rules/{name} [delete]
func (h *ruleHandler) deleteRule(c *gin.Context) {
	if err := h.ruleService.DeleteRule(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err, "Failed to delete rule")
		return
	}
	c.Status(http.StatusNoContent)
}
