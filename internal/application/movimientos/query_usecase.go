package movimientos

import (
	"context"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// QueryUseCase consultas de remitos y salidas (fuera de transacción).
type QueryUseCase struct {
	intakeRepo    repository.GoodsIntakeRepository
	outflowRepo   repository.SalesOutflowRepository
	partyRepo     repository.PartyRepository
	productRepo   repository.ProductRepository
	containerRepo repository.ContainerRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	intakeRepo repository.GoodsIntakeRepository,
	outflowRepo repository.SalesOutflowRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	containerRepo repository.ContainerRepository,
) *QueryUseCase {
	return &QueryUseCase{
		intakeRepo:    intakeRepo,
		outflowRepo:   outflowRepo,
		partyRepo:     partyRepo,
		productRepo:   productRepo,
		containerRepo: containerRepo,
	}
}

// GetIntake devuelve un remito con pesadas y envases.
func (uc *QueryUseCase) GetIntake(ctx context.Context, id string) (*entity.GoodsIntake, error) {
	intake, err := uc.intakeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if intake == nil {
		return nil, domain.ErrNotFound
	}
	return intake, nil
}

// ListIntakes lista remitos, opcionalmente filtrados por proveedor.
func (uc *QueryUseCase) ListIntakes(ctx context.Context, supplierID string, limit, offset int) ([]*entity.GoodsIntake, error) {
	if supplierID != "" {
		return uc.intakeRepo.ListBySupplier(supplierID, limit, offset)
	}
	return uc.intakeRepo.List(limit, offset)
}

// GetOutflow devuelve una salida con líneas y envases.
func (uc *QueryUseCase) GetOutflow(ctx context.Context, id string) (*entity.SalesOutflow, error) {
	outflow, err := uc.outflowRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if outflow == nil {
		return nil, domain.ErrNotFound
	}
	return outflow, nil
}

// ListOutflows lista salidas, opcionalmente filtradas por cliente.
func (uc *QueryUseCase) ListOutflows(ctx context.Context, clientID string, limit, offset int) ([]*entity.SalesOutflow, error) {
	if clientID != "" {
		return uc.outflowRepo.ListByClient(clientID, limit, offset)
	}
	return uc.outflowRepo.List(limit, offset)
}

// OutflowDocData devuelve la salida con el cliente y los catálogos resueltos
// (productos y tipos de envase referidos), para armar documentos de transporte.
func (uc *QueryUseCase) OutflowDocData(ctx context.Context, id string) (*entity.SalesOutflow, *entity.Party, map[string]*entity.Product, map[string]*entity.ContainerType, error) {
	outflow, err := uc.GetOutflow(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	client, err := uc.partyRepo.GetByID(outflow.ClientID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if client == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}

	products := make(map[string]*entity.Product, len(outflow.Lines))
	for _, line := range outflow.Lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if p != nil {
			products[line.ProductID] = p
		}
	}
	containers := make(map[string]*entity.ContainerType, len(outflow.Containers))
	for _, mv := range outflow.Containers {
		if _, ok := containers[mv.ContainerTypeID]; ok {
			continue
		}
		ct, err := uc.containerRepo.GetType(mv.ContainerTypeID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if ct != nil {
			containers[mv.ContainerTypeID] = ct
		}
	}
	return outflow, client, products, containers, nil
}
