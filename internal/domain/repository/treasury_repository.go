package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// TreasuryRepository acceso a cajas/bancos y sus asientos.
type TreasuryRepository interface {
	Create(account *entity.TreasuryAccount) error
	GetByID(id string) (*entity.TreasuryAccount, error)
	// GetForUpdate bloquea la fila para incrementar/decrementar el saldo.
	GetForUpdate(id string) (*entity.TreasuryAccount, error)
	List() ([]*entity.TreasuryAccount, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	Delete(id string) error

	CreateEntry(entry *entity.TreasuryEntry) error
	ListEntries(accountID string, limit, offset int) ([]*entity.TreasuryEntry, error)
	GetEntry(id string) (*entity.TreasuryEntry, error)
	DeleteEntry(id string) error
	DeleteEntriesByDoc(docType, docID string) error
	CountEntries(accountID string) (int, error)
}
