package handlers

import (
	"net/http"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type situationHandler struct {
	situationService portssvc.SituationSvc
}

func registerSituationRoutes(rg *gin.RouterGroup, ss portssvc.SituationSvc) {
	h := &situationHandler{situationService: ss}
	rg.GET("/situatie", h.getSituation)
}

// getSituation godoc
// @Summary Monthly situation per client
// @Description One row per client and month with the state of each stage. Admins and managers see every client; users see the months of their own tasks.
// @Tags situatie
// @Produce json
// @Param firma query string false "Case-insensitive part of the client name"
// @Param month query int false "Month 1-12, requires year"
// @Param year query int false "Year, requires month"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /situatie [get]
func (h *situationHandler) getSituation(c *gin.Context) {
	var params dto.SituationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	filter := portssvc.SituationFilter{Firma: params.Firma}
	if params.Month != "" || params.Year != "" {
		p, err := domain.ParsePeriod(params.Month, params.Year)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.Period = &p
	}

	rows, err := h.situationService.GetSituation(c.Request.Context(), middleware.GetViewerFromContext(c), filter)
	if err != nil {
		respondError(c, err, "Failed to compute situation")
		return
	}
	c.JSON(http.StatusOK, dto.ToSituationResponse(rows))
}
