package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// LedgerRepository acceso al mayor de cuenta corriente.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	// ListByParty devuelve los asientos de la parte en orden cronológico (fecha, created_at).
	ListByParty(partyType, partyID string) ([]*entity.LedgerEntry, error)
	ListByPartyRange(partyType, partyID string, from, to time.Time) ([]*entity.LedgerEntry, error)
	ListByDoc(docType, docID string) ([]*entity.LedgerEntry, error)
	UpdateBalanceAfter(id string, balance decimal.Decimal) error
	Delete(id string) error
}
