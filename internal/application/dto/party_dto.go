package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest body para POST /api/parties.
type CreatePartyRequest struct {
	Type  string `json:"type"` // client | supplier
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdatePartyRequest body para PUT /api/parties/:id.
type UpdatePartyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PartyResponse cliente o proveedor en respuestas.
type PartyResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReconcileResponse resultado de POST /api/parties/:id/reconcile.
type ReconcileResponse struct {
	Balance        decimal.Decimal `json:"balance"`
	Drifted        bool            `json:"drifted"`
	SnapshotsFixed int             `json:"snapshots_fixed"`
}

// HealFailureDTO falla aislada del saneo masivo.
type HealFailureDTO struct {
	PartyID string `json:"party_id"`
	Error   string `json:"error"`
}

// HealReportResponse resultado de POST /api/parties/heal.
type HealReportResponse struct {
	Parties   int              `json:"parties"`
	Corrected int              `json:"corrected"`
	Failures  []HealFailureDTO `json:"failures,omitempty"`
}

// LedgerEntryResponse un asiento del extracto.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	DocType      string          `json:"doc_type"`
	DocID        string          `json:"doc_id"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
}

// StatementResponse extracto de cuenta corriente.
type StatementResponse struct {
	Party          PartyResponse         `json:"party"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
	Entries        []LedgerEntryResponse `json:"entries"`
}
