package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// ProductRepository acceso a productos (especie/variedad) y su stock en kilos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stockKg decimal.Decimal) error
	Delete(id string) error
}
