package tesoreria

import (
	"context"

	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// bundle de repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}
