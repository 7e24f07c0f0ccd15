//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natansalgado/otabank/internal/adapter/repository/postgres"
)

var (
	db      *postgres.DB
	baseURL string
)

// TestMain connects to the database and the running server, prepares the
// schema and starts from a clean ledger
func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	db, err = postgres.NewDB(getDBConnectionString())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		panic(fmt.Sprintf("Failed to migrate schema: %v", err))
	}

	if _, err := db.ExecContext(ctx, `TRUNCATE clients, accounts, transactions RESTART IDENTITY CASCADE`); err != nil {
		panic(fmt.Sprintf("Failed to reset tables: %v", err))
	}

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	os.Exit(m.Run())
}

func getDBConnectionString() string {
	if s := os.Getenv("DB_CONN_STR"); s != "" {
		return s
	}
	return "host=localhost port=5432 user=postgres password=postgres dbname=otabank sslmode=disable"
}

func postJSON(t *testing.T, path string, body map[string]any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func deleteJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// newAccount creates a client and one account for it, returning the public
// account number
func newAccount(t *testing.T, email string) float64 {
	t.Helper()

	status, client := postJSON(t, "/clients", map[string]any{
		"name":     "E2E Client",
		"email":    email,
		"password": "s3cret!",
		"phone":    "11999990000",
		"address":  "Rua de Teste, 1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, account := postJSON(t, "/accounts", map[string]any{"clientId": client["id"]})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "0.00", account["balance"])

	return account["number"].(float64)
}

func accountBalance(t *testing.T, number float64) string {
	t.Helper()

	status, tx := postJSON(t, "/transactions", map[string]any{
		"account": number,
		"type":    "balance",
	})
	require.Equal(t, http.StatusCreated, status)
	return tx["value"].(string)
}

func TestDepositScenario(t *testing.T) {
	number := newAccount(t, "deposit@example.com")

	status, tx := postJSON(t, "/transactions", map[string]any{
		"account": number,
		"type":    "deposit",
		"value":   200,
	})

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "deposit", tx["type"])
	assert.Equal(t, "200.00", tx["value"])
	assert.Equal(t, "200.00", accountBalance(t, number))
}

func TestWithdrawInsufficientFundsScenario(t *testing.T) {
	number := newAccount(t, "withdraw@example.com")

	status, _ := postJSON(t, "/transactions", map[string]any{
		"account": number, "type": "deposit", "value": 50,
	})
	require.Equal(t, http.StatusCreated, status)

	status, errBody := postJSON(t, "/transactions", map[string]any{
		"account": number, "type": "withdraw", "value": 100,
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient funds.", errBody["error"])
	// The failed withdrawal must not have touched the balance.
	assert.Equal(t, "50.00", accountBalance(t, number))
}

func TestTransferScenario(t *testing.T) {
	source := newAccount(t, "transfer-a@example.com")
	target := newAccount(t, "transfer-b@example.com")

	status, _ := postJSON(t, "/transactions", map[string]any{
		"account": source, "type": "deposit", "value": 150,
	})
	require.Equal(t, http.StatusCreated, status)

	status, tx := postJSON(t, "/transactions", map[string]any{
		"account":   source,
		"type":      "transfer",
		"toAccount": target,
		"value":     100,
	})

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "transfer", tx["type"])
	assert.NotNil(t, tx["accountToId"])
	assert.Equal(t, "50.00", accountBalance(t, source))
	assert.Equal(t, "100.00", accountBalance(t, target))
}

func TestTransactionRoundTrip(t *testing.T) {
	number := newAccount(t, "roundtrip@example.com")

	status, created := postJSON(t, "/transactions", map[string]any{
		"account": number, "type": "deposit", "value": 10,
	})
	require.Equal(t, http.StatusCreated, status)

	id := fmt.Sprintf("%v", created["id"])

	status, found := getJSON(t, "/transactions/"+id)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created["value"], found["value"])
	assert.Equal(t, created["type"], found["type"])

	status, removed := deleteJSON(t, "/transactions/"+id)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created["id"], removed["id"])

	// Removable exactly once.
	status, _ = deleteJSON(t, "/transactions/"+id)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMalformedAccountNumber(t *testing.T) {
	status, errBody := postJSON(t, "/transactions", map[string]any{
		"account": "x",
		"type":    "deposit",
	})

	assert.Equal(t, http.StatusNotAcceptable, status)
	assert.Equal(t, "The account number needs to be an integer number.", errBody["error"])
}
