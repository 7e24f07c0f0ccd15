package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by repositories. Services translate them into the
// typed taxonomy below.
var (
	// ErrNoRecord is returned by repository lookups when no row matches.
	ErrNoRecord = errors.New("no record found")

	// ErrNumberTaken is returned by AccountRepository.Create when the
	// generated account number collides with an existing one.
	ErrNumberTaken = errors.New("account number already taken")
)

// Error is a typed business failure carrying an HTTP-style status code and a
// user-facing message. Services return these as values for every expected
// business condition; only infrastructure faults propagate as ordinary errors.
type Error struct {
	Code    string // stable machine-readable kind
	Status  int    // suggested HTTP status
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Error taxonomy. Malformed input is 406, missing records are 404, a failed
// funds check is 400.
var (
	ErrInvalidIDFormat = &Error{
		Code:    "invalid_id_format",
		Status:  http.StatusNotAcceptable,
		Message: "Invalid ID format, use a integer number.",
	}
	ErrInvalidAccountNumber = &Error{
		Code:    "invalid_account_number",
		Status:  http.StatusNotAcceptable,
		Message: "The account number needs to be an integer number.",
	}
	ErrInvalidTargetAccountNumber = &Error{
		Code:    "invalid_target_account_number",
		Status:  http.StatusNotAcceptable,
		Message: "The Target account number needs to be an integer number.",
	}
	ErrAccountNotFound = &Error{
		Code:    "account_not_exists",
		Status:  http.StatusNotFound,
		Message: "Account doesn't exists.",
	}
	ErrTargetAccountNotFound = &Error{
		Code:    "target_account_not_exists",
		Status:  http.StatusNotFound,
		Message: "Target account doesn't exist.",
	}
	ErrTransactionNotFound = &Error{
		Code:    "transaction_not_exists",
		Status:  http.StatusNotFound,
		Message: "Transaction doesn't exists.",
	}
	ErrClientNotFound = &Error{
		Code:    "client_not_exists",
		Status:  http.StatusNotFound,
		Message: "Client doesn't exists.",
	}
	ErrInvalidTransactionType = &Error{
		Code:    "invalid_transaction_type",
		Status:  http.StatusNotAcceptable,
		Message: "The type needs to be 'balance' | 'transfer' | 'withdraw' | 'deposit'",
	}
	ErrValueNotNumber = &Error{
		Code:    "value_is_nan",
		Status:  http.StatusNotAcceptable,
		Message: "The value needs to be a number.",
	}
	ErrNegativeValue = &Error{
		Code:    "negative_value",
		Status:  http.StatusNotAcceptable,
		Message: "The value needs to be a positive number.",
	}
	ErrTransferRequiresTarget = &Error{
		Code:    "transfer_requires_account_to",
		Status:  http.StatusNotAcceptable,
		Message: "To make a transfer, the target account number needs to be declared with 'toAccount'.",
	}
	ErrInsufficientFunds = &Error{
		Code:    "insufficient_funds",
		Status:  http.StatusBadRequest,
		Message: "Insufficient funds.",
	}
	ErrEmailTaken = &Error{
		Code:    "email_taken",
		Status:  http.StatusNotAcceptable,
		Message: "Email already exists.",
	}
	ErrMissingClientFields = &Error{
		Code:    "missing_client_fields",
		Status:  http.StatusNotAcceptable,
		Message: "Name, email, password, phone and address are all required.",
	}
)
