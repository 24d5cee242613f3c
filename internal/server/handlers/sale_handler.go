package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/internal/service/sales"
)

// SaleHandler handles sale HTTP endpoints.
type SaleHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc *sales.Service, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleHandler{svc: svc, logger: logger}
}

// Create runs the sale workflow. Policy violations map to 400, a missing
// product to 404; messages carry the offending product or rule.
func (h *SaleHandler) Create(c *gin.Context) {
	var req models.SaleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrInvalidQuantity),
			errors.Is(err, sales.ErrCreditToNewClient),
			errors.Is(err, sales.ErrInsufficientStock):
			h.logger.Warn("sale rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, mongodb.ErrNotFound):
			h.logger.Warn("sale references missing product", zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed recording sale", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sale"})
		}
		return
	}

	c.JSON(http.StatusOK, sale)
}

// List returns recorded sales, newest first.
func (h *SaleHandler) List(c *gin.Context) {
	list, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}
	if list == nil {
		list = []models.Sale{}
	}

	c.JSON(http.StatusOK, list)
}

// Get returns a single sale.
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.svc.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		h.logger.Error("failed fetching sale", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sale"})
		return
	}

	c.JSON(http.StatusOK, sale)
}
