package movimientos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// applyContainerMoves aplica los deltas de envases de un documento con bloqueo
// de fila y registra cada efecto en el recorder. Los deltas vienen firmados tal
// como los declara el documento; la anulación los invierte desde el registro.
func applyContainerMoves(tx repository.Tx, partyID string, moves []entity.ContainerMove, rec *entity.EffectRecorder, now time.Time) error {
	for _, m := range moves {
		ct, err := tx.Containers.GetType(m.ContainerTypeID)
		if err != nil {
			return err
		}
		if ct == nil {
			return domain.ErrNotFound
		}

		if m.EmptyDelta != 0 || m.FullDelta != 0 {
			stock, err := tx.Containers.GetStockForUpdate(m.ContainerTypeID)
			if err != nil {
				return err
			}
			stock.EmptyUnits += m.EmptyDelta
			stock.FullUnits += m.FullDelta
			stock.UpdatedAt = now
			if err := tx.Containers.UpsertStock(stock); err != nil {
				return err
			}
			if m.EmptyDelta != 0 {
				rec.Add(entity.EffectContainerEmpty, m.ContainerTypeID, "", decimal.NewFromInt(int64(m.EmptyDelta)), "")
			}
			if m.FullDelta != 0 {
				rec.Add(entity.EffectContainerFull, m.ContainerTypeID, "", decimal.NewFromInt(int64(m.FullDelta)), "")
			}
		}

		if m.DebtDelta != 0 {
			debt, err := tx.Containers.GetDebtForUpdate(partyID, m.ContainerTypeID)
			if err != nil {
				return err
			}
			debt.Units += m.DebtDelta
			debt.UpdatedAt = now
			if err := tx.Containers.UpsertDebt(debt); err != nil {
				return err
			}
			rec.Add(entity.EffectContainerDebt, m.ContainerTypeID, partyID, decimal.NewFromInt(int64(m.DebtDelta)), "")
		}
	}
	return nil
}
