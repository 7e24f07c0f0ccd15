package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natansalgado/otabank/internal/domain"
)

// AccountService is the account management surface consumed by the transport
type AccountService interface {
	FindAll(ctx context.Context) ([]*domain.Account, error)
	FindAccount(ctx context.Context, id string) (*domain.Account, error)
	AddAccount(ctx context.Context, clientID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AccountHandler exposes account management over HTTP
type AccountHandler struct {
	service AccountService
	logger  *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{service: service, logger: logger}
}

type addAccountRequest struct {
	ClientID flexNumber `json:"clientId"`
}

// FindAll handles GET /accounts
func (h *AccountHandler) FindAll(c *gin.Context) {
	accounts, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newAccountListResponse(accounts))
}

// FindAccount handles GET /accounts/:id
func (h *AccountHandler) FindAccount(c *gin.Context) {
	account, err := h.service.FindAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}

// AddAccount handles POST /accounts
func (h *AccountHandler) AddAccount(c *gin.Context) {
	var req addAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	account, err := h.service.AddAccount(c.Request.Context(), string(req.ClientID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newAccountResponse(account))
}

// DeleteAccount handles DELETE /accounts/:id
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	account, err := h.service.DeleteAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}
