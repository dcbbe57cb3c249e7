package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// generationHandler exposes the task generators.
type generationHandler struct {
	generationService portssvc.TaskGenerationSvc
}

func newGenerationHandler(gs portssvc.TaskGenerationSvc) *generationHandler {
	return &generationHandler{generationService: gs}
}

// registerAdminGenerationRoutes mounts the generators guarded by ADMIN Basic auth.
func registerAdminGenerationRoutes(r *gin.Engine, auth middleware.AdminAuthenticator, gs portssvc.TaskGenerationSvc) {
	h := newGenerationHandler(gs)

	admin := r.Group("/api/tasks", middleware.AdminBasicAuth(auth))
	{
		admin.POST("/generate-fixed", h.generateFixedTitles)
		admin.POST("/generate-conditional", h.generateConditionalNotes)
	}
}

// registerGenerationRoutes mounts the JWT generators on the tasks group.
func registerGenerationRoutes(tasks *gin.RouterGroup, gs portssvc.TaskGenerationSvc) {
	h := newGenerationHandler(gs)

	managers := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)
	tasks.POST("/generate", managers, h.generateByFrequency)
	tasks.POST("/generate-with-rules", managers, h.generateWithRules)
}

// bindGenerationParams reads parameters from the JSON body, if any, and fills
// the gaps from the query string.
func bindGenerationParams(c *gin.Context) (dto.GenerationParams, bool) {
	var params dto.GenerationParams
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return params, false
		}
	}
	var query dto.GenerationParams
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return params, false
	}
	params.Merge(query)
	return params, true
}

func parseSkipExisting(c *gin.Context, p dto.GenerationParams) (portssvc.GenerationOptions, bool) {
	skip, err := p.SkipExisting.Bool()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid skipExisting"})
		return portssvc.GenerationOptions{}, false
	}
	return portssvc.GenerationOptions{SkipExisting: skip}, true
}

func parsePeriod(c *gin.Context, p dto.GenerationParams) (domain.Period, bool) {
	period, err := domain.ParsePeriod(p.Month.String(), p.Year.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return domain.Period{}, false
	}
	return period, true
}

func logGeneration(c *gin.Context, generator string, report *domain.GenerationReport) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Generation request completed",
		slog.String("generator", generator),
		slog.Int("created", len(report.Tasks)),
		slog.Int("skipped", report.Skipped))
}

// generateByFrequency godoc
// @Summary Generate tasks from rules of one frequency
// @Description Creates one task per active rule of the frequency and matching client. Month and year are optional and date the tasks on the 1st; otherwise tasks are dated today.
// @Tags generation
// @Accept json
// @Produce json
// @Param frequency query string false "MONTHLY or QUARTERLY"
// @Param month query int false "Month 1-12"
// @Param year query int false "Year"
// @Param skipExisting query bool false "Skip tasks that already exist"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/generate [post]
func (h *generationHandler) generateByFrequency(c *gin.Context) {
	params, ok := bindGenerationParams(c)
	if !ok {
		return
	}
	frequency := domain.Frequency(params.Frequency.String())
	if !frequency.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing frequency"})
		return
	}
	var period *domain.Period
	if params.Month.String() != "" || params.Year.String() != "" {
		p, ok := parsePeriod(c, params)
		if !ok {
			return
		}
		period = &p
	}
	opts, ok := parseSkipExisting(c, params)
	if !ok {
		return
	}

	report, err := h.generationService.GenerateByFrequency(c.Request.Context(), frequency, period, opts)
	if err != nil {
		respondError(c, err, "Failed to generate tasks by frequency")
		return
	}
	logGeneration(c, "frequency", report)
	c.JSON(http.StatusOK, dto.ToGenerationResponse(report))
}

// generateWithRules godoc
// @Summary Generate declaration tasks for a month
// @Description Creates "Generat declaratii" and "Depus declaratii" on the 25th for each client with applicable rules, noting the rule titles.
// @Tags generation
// @Accept json
// @Produce json
// @Param month query int true "Month 1-12"
// @Param year query int true "Year"
// @Param skipExisting query bool false "Skip tasks that already exist"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/generate-with-rules [post]
func (h *generationHandler) generateWithRules(c *gin.Context) {
	params, ok := bindGenerationParams(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c, params)
	if !ok {
		return
	}
	opts, ok := parseSkipExisting(c, params)
	if !ok {
		return
	}

	report, err := h.generationService.GenerateWithRules(c.Request.Context(), period, opts)
	if err != nil {
		respondError(c, err, "Failed to generate tasks with rules")
		return
	}
	logGeneration(c, "with_rules", report)
	c.JSON(http.StatusOK, dto.ToGenerationResponse(report))
}

// generateFixedTitles godoc
// @Summary Generate the monthly document tasks
// @Description Creates "Avem acte", "Introdus acte", "Verificat acte" and "Luna printata" on the 1st for every client with an assignee.
// @Tags generation
// @Produce json
// @Param month query int true "Month 1-12"
// @Param year query int true "Year"
// @Param skipExisting query bool false "Skip tasks that already exist"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BasicAuth
// @Router /api/tasks/generate-fixed [post]
func (h *generationHandler) generateFixedTitles(c *gin.Context) {
	params, ok := bindGenerationParams(c)
	if !ok {
		return
	}
	period, ok := parsePeriod(c, params)
	if !ok {
		return
	}
	opts, ok := parseSkipExisting(c, params)
	if !ok {
		return
	}

	report, err := h.generationService.GenerateFixedTitles(c.Request.Context(), period, opts)
	if err != nil {
		respondError(c, err, "Failed to generate fixed tasks")
		return
	}
	logGeneration(c, "fixed_titles", report)
	c.JSON(http.StatusOK, dto.ToGenerationResponse(report))
}

// generateConditionalNotes godoc
// @Summary Add a note to a client's declaration tasks
// @Description Appends note (default 390) to the client's "Generat declaratii" and "Depus declaratii" tasks of the month, creating them when missing.
// @Tags generation
// @Produce json
// @Param clientId query int true "Client ID"
// @Param month query int true "Month 1-12"
// @Param year query int true "Year"
// @Param note query string false "Note to append"
// @Success 200 {object} dto.ConditionalNotesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BasicAuth
// @Router /api/tasks/generate-conditional [post]
func (h *generationHandler) generateConditionalNotes(c *gin.Context) {
	params, ok := bindGenerationParams(c)
	if !ok {
		return
	}
	if params.ClientID.String() == "" || params.Month.String() == "" || params.Year.String() == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing clientId, month, or year parameter"})
		return
	}
	clientID, err := strconv.ParseInt(params.ClientID.String(), 10, 64)
	if err != nil || clientID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid clientId"})
		return
	}
	period, ok := parsePeriod(c, params)
	if !ok {
		return
	}

	report, err := h.generationService.GenerateConditionalNotes(c.Request.Context(), clientID, period, params.Note.String())
	if err != nil {
		respondError(c, err, "Failed to process conditional notes")
		return
	}
	c.JSON(http.StatusOK, dto.ToConditionalNotesResponse(report))
}
