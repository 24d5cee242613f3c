package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/internal/service/catalog"
)

// ClientHandler handles client catalog HTTP endpoints.
type ClientHandler struct {
	svc    *catalog.ClientService
	logger *zap.Logger
}

// NewClientHandler constructs the HTTP handler adapter.
func NewClientHandler(svc *catalog.ClientService, logger *zap.Logger) *ClientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientHandler{svc: svc, logger: logger}
}

// Create registers a new client.
func (h *ClientHandler) Create(c *gin.Context) {
	var req models.ClientCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid client payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed creating client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// List returns registered clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, clients)
}

// Get returns a single client.
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.Error("failed fetching client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// Update applies a partial update to a client.
func (h *ClientHandler) Update(c *gin.Context) {
	var req models.ClientUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid client update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.Error("failed updating client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// Delete removes a client.
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.Error("failed deleting client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
