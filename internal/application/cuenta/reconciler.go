package cuenta

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/repository"
	"github.com/frutasur/empaque-api/pkg/logger"
)

// Reconciler recalcula el saldo de una cuenta corriente desde el mayor y
// corrige la deriva del saldo cacheado. Es idempotente: con el mismo mayor no
// escribe nada en la segunda pasada.
type Reconciler struct {
	txRunner  TxRunner
	partyRepo repository.PartyRepository
	log       *logger.Logger
}

// NewReconciler construye el reconciliador.
func NewReconciler(txRunner TxRunner, partyRepo repository.PartyRepository, log *logger.Logger) *Reconciler {
	return &Reconciler{txRunner: txRunner, partyRepo: partyRepo, log: log}
}

// Result resultado de un recálculo.
type Result struct {
	Balance        decimal.Decimal // saldo final (suma firmada del mayor, redondeada a 2 decimales)
	Drifted        bool            // el saldo cacheado difería y fue corregido
	SnapshotsFixed int             // asientos cuyo balance_after estaba desviado
}

// RecomputeBalance recalcula el saldo de la parte sumando los asientos en orden
// cronológico, reescribe los snapshots balance_after desviados y corrige el
// saldo cacheado si difiere. Sin asientos el saldo es 0. Asientos huérfanos
// (documento origen ya inexistente) se suman igual: no hay validación cruzada.
func (s *Reconciler) RecomputeBalance(ctx context.Context, partyType, partyID string) (Result, error) {
	var res Result
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		r, err := RecomputeInTx(tx, partyType, partyID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	return res, err
}

// RecomputeInTx recalcula dentro de una transacción ya abierta. Lo usa tanto
// RecomputeBalance como la anulación (paso final de cada undo).
func RecomputeInTx(tx repository.Tx, partyType, partyID string) (Result, error) {
	var res Result

	party, err := tx.Parties.GetForUpdate(partyID)
	if err != nil {
		return res, err
	}
	if party == nil || party.Type != partyType {
		return res, domain.ErrNotFound
	}

	entries, err := tx.Ledger.ListByParty(partyType, partyID)
	if err != nil {
		return res, err
	}

	running := decimal.Zero
	for _, e := range entries {
		running = domaincuenta.Round2(running.Add(domaincuenta.SignedAmount(e)))
		if !e.BalanceAfter.Equal(running) {
			if err := tx.Ledger.UpdateBalanceAfter(e.ID, running); err != nil {
				return res, err
			}
			res.SnapshotsFixed++
		}
	}

	res.Balance = running
	if !party.CurrentBalance.Equal(running) {
		if err := tx.Parties.UpdateBalance(partyID, running); err != nil {
			return res, err
		}
		res.Drifted = true
	}
	return res, nil
}
