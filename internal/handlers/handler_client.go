package handlers

import (
	"net/http"

	"github.com/SscSPs/cabinet_contabil_app/internal/core/domain"
	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/dto"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := &clientHandler{clientService: clientService}
	managers := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", managers, h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", managers, h.updateClient)
		clients.GET("/:id/users", h.listClientUsers)
		clients.POST("/:id/users", managers, h.assignUser)
		clients.DELETE("/:id/users/:userId", managers, h.unassignUser)
	}
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponses(clients))
}

// createClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.ClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Replace a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param client body dto.ClientRequest true "Client"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClientUsers godoc
// @Summary List the users assigned to a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {array} dto.ClientUserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/users [get]
func (h *clientHandler) listClientUsers(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.clientService.ListClientUsers(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "Failed to list client users")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientUserResponses(users))
}

// assignUser godoc
// @Summary Assign a user to a client
// @Tags clients
// @Accept json
// @Param id path int true "Client ID"
// @Param assignment body dto.AssignUserRequest true "User"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/users [post]
func (h *clientHandler) assignUser(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if err := h.clientService.AssignUser(c.Request.Context(), clientID, req.UserID); err != nil {
		respondError(c, err, "Failed to assign user")
		return
	}
	c.Status(http.StatusNoContent)
}

// unassignUser godoc
// @Summary Remove a user from a client
// @Tags clients
// @Param id path int true "Client ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/users/{userId} [delete]
func (h *clientHandler) unassignUser(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.clientService.UnassignUser(c.Request.Context(), clientID, userID); err != nil {
		respondError(c, err, "Failed to unassign user")
		return
	}
	c.Status(http.StatusNoContent)
}
