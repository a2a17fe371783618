package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// ContainerRepository acceso a tipos de envase, stock propio y deuda por parte.
type ContainerRepository interface {
	CreateType(ct *entity.ContainerType) error
	GetType(id string) (*entity.ContainerType, error)
	ListTypes() ([]*entity.ContainerType, error)

	// GetStockForUpdate bloquea la fila de stock de envases (vacíos/llenos).
	GetStockForUpdate(containerTypeID string) (*entity.ContainerStock, error)
	UpsertStock(stock *entity.ContainerStock) error
	ListStock() ([]*entity.ContainerStock, error)

	// GetDebtForUpdate bloquea el contador de deuda de envases de una parte.
	GetDebtForUpdate(partyID, containerTypeID string) (*entity.ContainerDebt, error)
	UpsertDebt(debt *entity.ContainerDebt) error
	ListDebtByParty(partyID string) ([]*entity.ContainerDebt, error)
}
