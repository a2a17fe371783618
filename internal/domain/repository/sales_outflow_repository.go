package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// SalesOutflowRepository acceso a salidas de fruta (ventas en cuenta corriente).
type SalesOutflowRepository interface {
	Create(outflow *entity.SalesOutflow) error
	GetByID(id string) (*entity.SalesOutflow, error)
	// GetForUpdate bloquea la cabecera para actualizar monto cobrado y estado.
	GetForUpdate(id string) (*entity.SalesOutflow, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.SalesOutflow, error)
	List(limit, offset int) ([]*entity.SalesOutflow, error)
	UpdateCollected(id string, amountCollected decimal.Decimal, status string) error
	Delete(id string) error
	CountByClient(clientID string) (int, error)
}
