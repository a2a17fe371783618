package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var _ cuenta.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con el
// bundle completo de repositorios atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el bundle y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	pgtx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgtx.Rollback(ctx) }()

	if err := fn(NewBundle(pgtx)); err != nil {
		return err
	}
	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewBundle arma el bundle de repositorios sobre un Querier (pool o tx).
func NewBundle(q Querier) repository.Tx {
	return repository.Tx{
		Parties:     NewPartyRepository(q),
		Ledger:      NewLedgerRepository(q),
		Products:    NewProductRepository(q),
		Containers:  NewContainerRepository(q),
		Intakes:     NewIntakeRepository(q),
		Outflows:    NewOutflowRepository(q),
		Collections: NewCollectionRepository(q),
		Payments:    NewPaymentRepository(q),
		Treasury:    NewTreasuryRepository(q),
		Checks:      NewCheckRepository(q),
		Effects:     NewEffectRepository(q),
	}
}
