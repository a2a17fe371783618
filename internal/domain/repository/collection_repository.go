package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// CollectionRepository acceso a cobranzas (con instrumentos anidados).
type CollectionRepository interface {
	Create(collection *entity.Collection) error
	GetByID(id string) (*entity.Collection, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Collection, error)
	List(limit, offset int) ([]*entity.Collection, error)
	Delete(id string) error
	CountByClient(clientID string) (int, error)
}

// PaymentRepository acceso a pagos a proveedores (con instrumentos anidados).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Payment, error)
	List(limit, offset int) ([]*entity.Payment, error)
	Delete(id string) error
	CountBySupplier(supplierID string) (int, error)
}
