package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natansalgado/otabank/internal/domain"
	clientuc "github.com/natansalgado/otabank/internal/usecase/client"
)

// ClientService is the client management surface consumed by the transport
type ClientService interface {
	FindAll(ctx context.Context) ([]*domain.Client, error)
	FindClient(ctx context.Context, id string) (*domain.Client, error)
	AddClient(ctx context.Context, input clientuc.ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, input clientuc.ClientInput) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) (*domain.Client, error)
}

// ClientHandler exposes client management over HTTP
type ClientHandler struct {
	service ClientService
	logger  *zap.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(service ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{service: service, logger: logger}
}

type clientRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Phone    flexNumber `json:"phone"`
	Address  string     `json:"address"`
}

func (r clientRequest) input() clientuc.ClientInput {
	return clientuc.ClientInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    string(r.Phone),
		Address:  r.Address,
	}
}

// FindAll handles GET /clients
func (h *ClientHandler) FindAll(c *gin.Context) {
	clients, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newClientListResponse(clients))
}

// FindClient handles GET /clients/:id
func (h *ClientHandler) FindClient(c *gin.Context) {
	client, err := h.service.FindClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}

// AddClient handles POST /clients
func (h *ClientHandler) AddClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	client, err := h.service.AddClient(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newClientResponse(client))
}

// UpdateClient handles PATCH /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	client, err := h.service.UpdateClient(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	client, err := h.service.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}
