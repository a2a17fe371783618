package maestros

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// ContainerUseCase tipos de envase y consulta de stock y deudas.
type ContainerUseCase struct {
	containerRepo repository.ContainerRepository
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(containerRepo repository.ContainerRepository) *ContainerUseCase {
	return &ContainerUseCase{containerRepo: containerRepo}
}

// CreateType da de alta un tipo de envase.
func (uc *ContainerUseCase) CreateType(ctx context.Context, name string) (*entity.ContainerType, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	ct := &entity.ContainerType{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.containerRepo.CreateType(ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// ListTypes devuelve todos los tipos de envase.
func (uc *ContainerUseCase) ListTypes(ctx context.Context) ([]*entity.ContainerType, error) {
	return uc.containerRepo.ListTypes()
}

// ListStock devuelve el stock propio de envases por tipo.
func (uc *ContainerUseCase) ListStock(ctx context.Context) ([]*entity.ContainerStock, error) {
	return uc.containerRepo.ListStock()
}

// ListDebtByParty devuelve los envases adeudados por una parte.
func (uc *ContainerUseCase) ListDebtByParty(ctx context.Context, partyID string) ([]*entity.ContainerDebt, error) {
	return uc.containerRepo.ListDebtByParty(partyID)
}
