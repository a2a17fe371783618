package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// PartyRepository acceso a clientes y proveedores con su saldo cacheado.
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id string) (*entity.Party, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para ajustar el saldo cacheado.
	GetForUpdate(id string) (*entity.Party, error)
	List(partyType string, limit, offset int) ([]*entity.Party, error)
	ListAll() ([]*entity.Party, error)
	Update(party *entity.Party) error
	UpdateBalance(id string, balance decimal.Decimal) error
	Delete(id string) error
}
