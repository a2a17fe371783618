package tesoreria

import (
	"context"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// QueryUseCase consultas de cobranzas y pagos (fuera de transacción).
type QueryUseCase struct {
	collectionRepo repository.CollectionRepository
	paymentRepo    repository.PaymentRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(collectionRepo repository.CollectionRepository, paymentRepo repository.PaymentRepository) *QueryUseCase {
	return &QueryUseCase{collectionRepo: collectionRepo, paymentRepo: paymentRepo}
}

// GetCollection devuelve una cobranza con instrumentos.
func (uc *QueryUseCase) GetCollection(ctx context.Context, id string) (*entity.Collection, error) {
	collection, err := uc.collectionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrNotFound
	}
	return collection, nil
}

// ListCollections lista cobranzas, opcionalmente filtradas por cliente.
func (uc *QueryUseCase) ListCollections(ctx context.Context, clientID string, limit, offset int) ([]*entity.Collection, error) {
	if clientID != "" {
		return uc.collectionRepo.ListByClient(clientID, limit, offset)
	}
	return uc.collectionRepo.List(limit, offset)
}

// GetPayment devuelve un pago con instrumentos.
func (uc *QueryUseCase) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

// ListPayments lista pagos, opcionalmente filtrados por proveedor.
func (uc *QueryUseCase) ListPayments(ctx context.Context, supplierID string, limit, offset int) ([]*entity.Payment, error) {
	if supplierID != "" {
		return uc.paymentRepo.ListBySupplier(supplierID, limit, offset)
	}
	return uc.paymentRepo.List(limit, offset)
}
