package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// CheckRepository acceso a cheques de terceros.
type CheckRepository interface {
	Create(check *entity.Check) error
	GetByID(id string) (*entity.Check, error)
	GetForUpdate(id string) (*entity.Check, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Check, error)
	List(limit, offset int) ([]*entity.Check, error)
	Update(check *entity.Check) error
	Delete(id string) error
	CountByParty(partyID string) (int, error)
}
