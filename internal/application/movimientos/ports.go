package movimientos

import (
	"context"

	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// bundle de repositorios atados a esa tx. Garantiza atomicidad del documento
// completo: deltas de stock y envases, asientos, saldo cacheado y registro de
// efectos se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}
