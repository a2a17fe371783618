package cuenta

import (
	"context"

	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// bundle de repositorios atados a esa tx. Garantiza que recálculo de snapshots
// y saldo cacheado se persistan atómicamente.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}
