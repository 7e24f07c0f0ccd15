package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the transport: middleware, health check and the resource
// routes for clients, accounts and transactions
func NewRouter(logger *zap.Logger, ledgerSvc LedgerService, accountSvc AccountService, clientSvc ClientService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	transactions := NewTransactionHandler(ledgerSvc, logger)
	router.GET("/transactions", transactions.FindAll)
	router.GET("/transactions/:id", transactions.FindTransaction)
	router.POST("/transactions", transactions.AddTransaction)
	router.DELETE("/transactions/:id", transactions.DeleteTransaction)

	accounts := NewAccountHandler(accountSvc, logger)
	router.GET("/accounts", accounts.FindAll)
	router.GET("/accounts/:id", accounts.FindAccount)
	router.POST("/accounts", accounts.AddAccount)
	router.DELETE("/accounts/:id", accounts.DeleteAccount)

	clients := NewClientHandler(clientSvc, logger)
	router.GET("/clients", clients.FindAll)
	router.GET("/clients/:id", clients.FindClient)
	router.POST("/clients", clients.AddClient)
	router.PATCH("/clients/:id", clients.UpdateClient)
	router.DELETE("/clients/:id", clients.DeleteClient)

	return router
}
