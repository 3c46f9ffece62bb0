package handlers

import (
	"errors"
	"io"
	"net/http"

	"client_tracker_backend/internal/services"
	"client_tracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// respondClientError maps a service error to the API error envelope.
// action completes "Failed to ..." for unexpected failures.
func respondClientError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", ""))
	case errors.Is(err, services.ErrMissingFields):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeMissingFields, "Missing required fields", "").
			WithRequired(services.RequiredClientFields...))
	case errors.Is(err, services.ErrInvalidAmount):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidAmount, "Amount must be a positive number", ""))
	case errors.Is(err, services.ErrInvalidDueDate):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidDueDate, "Invalid due date format", ""))
	case errors.Is(err, services.ErrInvalidStatus):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidStatus, "Invalid status. Must be PENDING, PAID, or OVERDUE", ""))
	case errors.Is(err, services.ErrClientValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed", err.Error()))
	case errors.Is(err, services.ErrDuplicateClient):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeDuplicateEntry, "Duplicate entry", "A record with this data already exists"))
	default:
		utils.LogError(err, "Failed to "+action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action, internalDetails(c, err)))
	}
}

// internalDetails exposes the error text only in development.
func internalDetails(c *gin.Context, err error) string {
	if c.GetBool(utils.DevelopmentModeKey) {
		return err.Error()
	}
	return ""
}

// bindJSON decodes the request body into obj. An empty body decodes to the zero
// value so that required-field validation reports it. On failure it responds
// and returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusRequestEntityTooLarge, utils.ErrCodePayloadTooLarge, "Request body too large", ""))
		return false
	}
	utils.LogDebug("Failed to bind JSON", map[string]interface{}{"error": err.Error(), "path": c.Request.URL.Path})
	utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
	return false
}

// parseClientID reads the :id path parameter; it responds with 400 and returns false when invalid.
func parseClientID(c *gin.Context) (int64, bool) {
	clientID, err := utils.StrToInt64(c.Param("id"))
	if err != nil || clientID < 1 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format", c.Param("id")))
		return 0, false
	}
	return clientID, true
}

// GetClients handles listing clients with status filter, search and pagination.
func (h *ClientHandler) GetClients(c *gin.Context) {
	params := services.ListClientsParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   utils.PositiveIntOr(c.Query("page"), services.DefaultPage),
		Limit:  utils.PositiveIntOr(c.Query("limit"), services.DefaultLimit),
	}

	list, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		respondClientError(c, err, "fetch clients")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		respondClientError(c, err, "fetch client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondClientError(c, err, "create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient handles a partial update of a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		respondClientError(c, err, "update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client. Success has an empty body.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		respondClientError(c, err, "delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDashboardStats returns client counts and amount sums per status.
func (h *ClientHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.clientService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondClientError(c, err, "fetch dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
