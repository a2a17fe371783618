package dto

import "github.com/shopspring/decimal"

// UndoPartyStatus estado de una parte tras la anulación.
type UndoPartyStatus struct {
	Type     string          `json:"type"`
	ID       string          `json:"id"`
	Balance  decimal.Decimal `json:"balance"`
	Orphaned bool            `json:"orphaned"` // sin documentos; la UI puede ofrecer borrarla
}

// UndoResponse resultado de DELETE de un documento.
type UndoResponse struct {
	DocType string            `json:"doc_type"`
	DocID   string            `json:"doc_id"`
	Parties []UndoPartyStatus `json:"parties"`
}
