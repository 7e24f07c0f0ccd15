package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natansalgado/otabank/internal/domain"
)

// flexNumber accepts a JSON number or a numeric string and normalizes it to
// its string form; absent and null fields stay empty
type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = flexNumber(s)
		return nil
	}
	*n = flexNumber(b)
	return nil
}

// respondError maps a typed domain failure to its carried status code;
// anything else is an infrastructure fault and surfaces as a 500
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.Status, gin.H{"error": domainErr.Message})
		return
	}

	logger.Error("request failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
}

// transactionResponse is the wire form of a transaction row; money travels as
// a fixed two-decimal string
type transactionResponse struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"accountId"`
	AccountToID *int64    `json:"accountToId,omitempty"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		AccountToID: tx.AccountToID,
		Type:        string(tx.Type),
		Value:       tx.Value.StringFixed(2),
		CreatedAt:   tx.CreatedAt,
	}
}

func newTransactionListResponse(txs []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, newTransactionResponse(tx))
	}
	return out
}

type accountResponse struct {
	ID        int64     `json:"id"`
	Number    int64     `json:"number"`
	ClientID  int64     `json:"clientId"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newAccountResponse(account *domain.Account) accountResponse {
	return accountResponse{
		ID:        account.ID,
		Number:    account.Number,
		ClientID:  account.ClientID,
		Balance:   account.Balance.StringFixed(2),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func newAccountListResponse(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, newAccountResponse(account))
	}
	return out
}

// clientResponse never carries the password hash
type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newClientResponse(client *domain.Client) clientResponse {
	return clientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

func newClientListResponse(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, newClientResponse(client))
	}
	return out
}
