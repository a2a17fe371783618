package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// GoodsIntakeRepository acceso a remitos de entrada (con pesadas y envases anidados).
type GoodsIntakeRepository interface {
	Create(intake *entity.GoodsIntake) error
	GetByID(id string) (*entity.GoodsIntake, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.GoodsIntake, error)
	List(limit, offset int) ([]*entity.GoodsIntake, error)
	Delete(id string) error
	CountBySupplier(supplierID string) (int, error)
}
