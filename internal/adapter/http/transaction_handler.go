package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natansalgado/otabank/internal/domain"
	"github.com/natansalgado/otabank/internal/usecase/ledger"
)

// LedgerService is the transaction engine surface consumed by the transport
type LedgerService interface {
	FindAll(ctx context.Context) ([]*domain.Transaction, error)
	FindTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	AddTransaction(ctx context.Context, input ledger.AddTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler exposes the ledger engine over HTTP
type TransactionHandler struct {
	service LedgerService
	logger  *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service LedgerService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{service: service, logger: logger}
}

type addTransactionRequest struct {
	Account   flexNumber `json:"account"`
	Type      string     `json:"type"`
	ToAccount flexNumber `json:"toAccount"`
	Value     flexNumber `json:"value"`
}

// FindAll handles GET /transactions
func (h *TransactionHandler) FindAll(c *gin.Context) {
	transactions, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionListResponse(transactions))
}

// FindTransaction handles GET /transactions/:id
func (h *TransactionHandler) FindTransaction(c *gin.Context) {
	tx, err := h.service.FindTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(tx))
}

// AddTransaction handles POST /transactions
func (h *TransactionHandler) AddTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	tx, err := h.service.AddTransaction(c.Request.Context(), ledger.AddTransactionInput{
		Account:   string(req.Account),
		Type:      req.Type,
		ToAccount: string(req.ToAccount),
		Value:     string(req.Value),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newTransactionResponse(tx))
}

// DeleteTransaction handles DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	tx, err := h.service.DeleteTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(tx))
}
