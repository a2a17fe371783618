package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckRequest datos de un cheque recibido en una cobranza.
type CheckRequest struct {
	Number    string `json:"number"`
	BankName  string `json:"bank_name,omitempty"`
	IssueDate string `json:"issue_date,omitempty"` // YYYY-MM-DD
	DueDate   string `json:"due_date,omitempty"`   // YYYY-MM-DD
}

// InstrumentRequest una pata de una cobranza o pago.
type InstrumentRequest struct {
	Kind              string          `json:"kind"` // cash | transfer | check
	TreasuryAccountID string          `json:"treasury_account_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Check             *CheckRequest   `json:"check,omitempty"`    // cobranza: alta en cartera
	CheckID           string          `json:"check_id,omitempty"` // pago: endoso desde cartera
}

// CreateCollectionRequest body para POST /api/collections.
type CreateCollectionRequest struct {
	ClientID    string              `json:"client_id"`
	OutflowID   string              `json:"outflow_id,omitempty"`
	Method      string              `json:"method"` // cash | transfer | check | mixed
	Date        string              `json:"date,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	Instruments []InstrumentRequest `json:"instruments"`
}

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	SupplierID  string              `json:"supplier_id"`
	Method      string              `json:"method"`
	Date        string              `json:"date,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	Retention   decimal.Decimal     `json:"retention,omitempty"`
	Instruments []InstrumentRequest `json:"instruments"`
}

// InstrumentResponse instrumento en respuestas.
type InstrumentResponse struct {
	Kind              string          `json:"kind"`
	TreasuryAccountID string          `json:"treasury_account_id,omitempty"`
	CheckID           string          `json:"check_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
}

// CollectionResponse cobranza registrada.
type CollectionResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"client_id"`
	OutflowID   string               `json:"outflow_id,omitempty"`
	Method      string               `json:"method"`
	Total       decimal.Decimal      `json:"total"`
	Date        time.Time            `json:"date"`
	Notes       string               `json:"notes,omitempty"`
	Instruments []InstrumentResponse `json:"instruments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID          string               `json:"id"`
	SupplierID  string               `json:"supplier_id"`
	Method      string               `json:"method"`
	Total       decimal.Decimal      `json:"total"`
	Retention   decimal.Decimal      `json:"retention,omitempty"`
	Date        time.Time            `json:"date"`
	Notes       string               `json:"notes,omitempty"`
	Instruments []InstrumentResponse `json:"instruments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CreateAccountRequest body para POST /api/treasury/accounts.
type CreateAccountRequest struct {
	Kind           string          `json:"kind"` // cash_box | bank
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance,omitempty"`
}

// AccountResponse caja o cuenta bancaria.
type AccountResponse struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateManualEntryRequest body para POST /api/treasury/accounts/:id/entries.
type CreateManualEntryRequest struct {
	Kind    string          `json:"kind"` // income | expense
	Amount  decimal.Decimal `json:"amount"`
	Concept string          `json:"concept"`
	Date    string          `json:"date,omitempty"`
}

// TreasuryEntryResponse asiento de caja/banco.
type TreasuryEntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Concept   string          `json:"concept"`
	DocType   string          `json:"doc_type,omitempty"`
	DocID     string          `json:"doc_id,omitempty"`
	Date      time.Time       `json:"date"`
}

// CheckResponse cheque de terceros.
type CheckResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	BankName    string          `json:"bank_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	PartyID     string          `json:"party_id,omitempty"`
	DepositBank string          `json:"deposit_bank,omitempty"`
}

// DepositCheckRequest body para POST /api/checks/:id/deposit.
type DepositCheckRequest struct {
	BankAccountID string `json:"bank_account_id"`
}

// UpdateCheckStatusRequest body para PUT /api/checks/:id/status.
type UpdateCheckStatusRequest struct {
	Status string `json:"status"`
}
