package reports

import (
	"context"
	"sort"
	"time"

	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// StockLine stock de envases de un tipo con su nombre resuelto.
type StockLine struct {
	Type  *entity.ContainerType
	Stock *entity.ContainerStock
}

// StockReport foto del stock de fruta y envases.
type StockReport struct {
	Products    []*entity.Product
	Containers  []StockLine
	GeneratedAt time.Time
}

// StockExporter vuelca el reporte de stock a un formato descargable.
type StockExporter interface {
	Export(rep *StockReport) ([]byte, error)
}

// StockUseCase arma la foto de stock para los reportes.
type StockUseCase struct {
	productRepo   repository.ProductRepository
	containerRepo repository.ContainerRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(productRepo repository.ProductRepository, containerRepo repository.ContainerRepository) *StockUseCase {
	return &StockUseCase{productRepo: productRepo, containerRepo: containerRepo}
}

// Build junta fruta y envases. Los tipos sin fila de stock aparecen en cero.
func (uc *StockUseCase) Build(ctx context.Context) (*StockReport, error) {
	products, err := uc.productRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	types, err := uc.containerRepo.ListTypes()
	if err != nil {
		return nil, err
	}
	stock, err := uc.containerRepo.ListStock()
	if err != nil {
		return nil, err
	}

	byType := map[string]*entity.ContainerStock{}
	for _, s := range stock {
		byType[s.ContainerTypeID] = s
	}

	rep := &StockReport{Products: products, GeneratedAt: time.Now()}
	for _, ct := range types {
		s, ok := byType[ct.ID]
		if !ok {
			s = &entity.ContainerStock{ContainerTypeID: ct.ID}
		}
		rep.Containers = append(rep.Containers, StockLine{Type: ct, Stock: s})
	}
	sort.Slice(rep.Containers, func(i, j int) bool { return rep.Containers[i].Type.Name < rep.Containers[j].Type.Name })
	return rep, nil
}
