package anulacion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
	"github.com/frutasur/empaque-api/pkg/logger"
)

// UndoUseCase anula documentos de forma atómica. En una sola transacción
// reproduce el registro de efectos invertido y en orden inverso, borra los
// asientos de cuenta corriente y de tesorería del documento, elimina el
// documento y reconcilia el saldo de cada parte tocada.
type UndoUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewUndoUseCase construye el caso de uso.
func NewUndoUseCase(txRunner TxRunner, log *logger.Logger) *UndoUseCase {
	return &UndoUseCase{txRunner: txRunner, log: log}
}

// PartyStatus estado de una parte tras la anulación. Orphaned marca que la
// parte quedó sin documento alguno; la interfaz puede ofrecer borrarla.
type PartyStatus struct {
	Type     string
	ID       string
	Balance  decimal.Decimal
	Orphaned bool
}

// UndoResult resultado de una anulación.
type UndoResult struct {
	DocType string
	DocID   string
	Parties []PartyStatus
}

// UndoIntake anula un ingreso de fruta.
func (uc *UndoUseCase) UndoIntake(ctx context.Context, id string) (*UndoResult, error) {
	return uc.undo(ctx, entity.DocTypeGoodsIntake, id)
}

// UndoOutflow anula una salida. Con cobros aplicados devuelve ErrConflict:
// primero hay que anular las cobranzas que la referencian.
func (uc *UndoUseCase) UndoOutflow(ctx context.Context, id string) (*UndoResult, error) {
	return uc.undo(ctx, entity.DocTypeGoodsOutflow, id)
}

// UndoCollection anula una cobranza. Si un cheque que ingresó ya salió de
// cartera (depositado o endosado) devuelve ErrConflict.
func (uc *UndoUseCase) UndoCollection(ctx context.Context, id string) (*UndoResult, error) {
	return uc.undo(ctx, entity.DocTypeCollection, id)
}

// UndoPayment anula un pago. Los cheques endosados vuelven a cartera.
func (uc *UndoUseCase) UndoPayment(ctx context.Context, id string) (*UndoResult, error) {
	return uc.undo(ctx, entity.DocTypePayment, id)
}

func (uc *UndoUseCase) undo(ctx context.Context, docType, docID string) (*UndoResult, error) {
	result := &UndoResult{DocType: docType, DocID: docID}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := checkUndoable(tx, docType, docID); err != nil {
			return err
		}

		effects, err := tx.Effects.ListByDoc(docType, docID)
		if err != nil {
			return err
		}
		for i := len(effects) - 1; i >= 0; i-- {
			if err := revertEffect(tx, effects[i]); err != nil {
				return err
			}
		}

		if err := tx.Treasury.DeleteEntriesByDoc(docType, docID); err != nil {
			return err
		}
		touched, err := cuenta.RemoveDocEntriesInTx(tx, docType, docID)
		if err != nil {
			return err
		}
		// Un pago puede llevar un asiento de retención aparte con el mismo doc id
		if docType == entity.DocTypePayment {
			more, err := cuenta.RemoveDocEntriesInTx(tx, entity.DocTypeRetention, docID)
			if err != nil {
				return err
			}
			touched = mergeRefs(touched, more)
		}
		if err := tx.Effects.DeleteByDoc(docType, docID); err != nil {
			return err
		}
		if err := deleteDocument(tx, docType, docID); err != nil {
			return err
		}

		for _, ref := range touched {
			res, err := cuenta.RecomputeInTx(tx, ref.Type, ref.ID)
			if err != nil {
				return err
			}
			orphaned, err := partyIsOrphan(tx, ref)
			if err != nil {
				return err
			}
			result.Parties = append(result.Parties, PartyStatus{
				Type:     ref.Type,
				ID:       ref.ID,
				Balance:  res.Balance,
				Orphaned: orphaned,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("doc_type", docType).
		Str("doc_id", docID).
		Int("parties", len(result.Parties)).
		Msg("documento anulado")
	return result, nil
}

// checkUndoable verifica que el documento exista y que nada posterior lo
// referencie todavía.
func checkUndoable(tx repository.Tx, docType, docID string) error {
	switch docType {
	case entity.DocTypeGoodsIntake:
		intake, err := tx.Intakes.GetByID(docID)
		if err != nil {
			return err
		}
		if intake == nil {
			return domain.ErrNotFound
		}
	case entity.DocTypeGoodsOutflow:
		outflow, err := tx.Outflows.GetByID(docID)
		if err != nil {
			return err
		}
		if outflow == nil {
			return domain.ErrNotFound
		}
		if !outflow.AmountCollected.IsZero() {
			return domain.ErrConflict
		}
	case entity.DocTypeCollection:
		collection, err := tx.Collections.GetByID(docID)
		if err != nil {
			return err
		}
		if collection == nil {
			return domain.ErrNotFound
		}
	case entity.DocTypePayment:
		payment, err := tx.Payments.GetByID(docID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// revertEffect aplica el inverso de un efecto registrado.
func revertEffect(tx repository.Tx, e *entity.DocumentEffect) error {
	now := time.Now()
	switch e.Type {
	case entity.EffectProductStock:
		product, err := tx.Products.GetForUpdate(e.TargetID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		return tx.Products.UpdateStock(e.TargetID, product.StockKg.Sub(e.Delta))

	case entity.EffectContainerEmpty, entity.EffectContainerFull:
		stock, err := tx.Containers.GetStockForUpdate(e.TargetID)
		if err != nil {
			return err
		}
		units := int(e.Delta.IntPart())
		if e.Type == entity.EffectContainerEmpty {
			stock.EmptyUnits -= units
		} else {
			stock.FullUnits -= units
		}
		stock.UpdatedAt = now
		return tx.Containers.UpsertStock(stock)

	case entity.EffectContainerDebt:
		debt, err := tx.Containers.GetDebtForUpdate(e.AuxID, e.TargetID)
		if err != nil {
			return err
		}
		debt.Units -= int(e.Delta.IntPart())
		debt.UpdatedAt = now
		return tx.Containers.UpsertDebt(debt)

	case entity.EffectTreasuryBalance:
		account, err := tx.Treasury.GetForUpdate(e.TargetID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		return tx.Treasury.UpdateBalance(e.TargetID, domaincuenta.Round2(account.Balance.Sub(e.Delta)))

	case entity.EffectCheckStatus:
		check, err := tx.Checks.GetForUpdate(e.TargetID)
		if err != nil {
			return err
		}
		if check == nil {
			return domain.ErrNotFound
		}
		// PrevValue vacío: el cheque nació con el documento. Se elimina, pero
		// solo si sigue en cartera; depositado o endosado ya movió plata.
		if e.PrevValue == "" {
			if check.Status != entity.CheckStatusInPortfolio {
				return domain.ErrCheckState
			}
			return tx.Checks.Delete(check.ID)
		}
		check.Status = e.PrevValue
		if e.PrevValue == entity.CheckStatusInPortfolio {
			check.PaymentID = ""
		}
		check.UpdatedAt = now
		return tx.Checks.Update(check)

	case entity.EffectOutflowCollected:
		outflow, err := tx.Outflows.GetForUpdate(e.TargetID)
		if err != nil {
			return err
		}
		// La salida pudo haberse anulado después de esta cobranza; no queda
		// nada que revertir.
		if outflow == nil {
			return nil
		}
		newCollected := domaincuenta.Round2(outflow.AmountCollected.Sub(e.Delta))
		status := entity.StatusFor(outflow.DebtTotal, newCollected)
		return tx.Outflows.UpdateCollected(e.TargetID, newCollected, status)
	}
	return domain.ErrInvalidInput
}

func deleteDocument(tx repository.Tx, docType, docID string) error {
	switch docType {
	case entity.DocTypeGoodsIntake:
		return tx.Intakes.Delete(docID)
	case entity.DocTypeGoodsOutflow:
		return tx.Outflows.Delete(docID)
	case entity.DocTypeCollection:
		return tx.Collections.Delete(docID)
	case entity.DocTypePayment:
		return tx.Payments.Delete(docID)
	}
	return domain.ErrInvalidInput
}

func mergeRefs(a, b []cuenta.PartyRef) []cuenta.PartyRef {
	seen := map[cuenta.PartyRef]bool{}
	for _, r := range a {
		seen[r] = true
	}
	for _, r := range b {
		if !seen[r] {
			seen[r] = true
			a = append(a, r)
		}
	}
	return a
}

// partyIsOrphan indica si la parte quedó sin documentos de ningún tipo.
func partyIsOrphan(tx repository.Tx, ref cuenta.PartyRef) (bool, error) {
	var counts []int

	switch ref.Type {
	case entity.PartyTypeSupplier:
		n, err := tx.Intakes.CountBySupplier(ref.ID)
		if err != nil {
			return false, err
		}
		counts = append(counts, n)
		n, err = tx.Payments.CountBySupplier(ref.ID)
		if err != nil {
			return false, err
		}
		counts = append(counts, n)
	case entity.PartyTypeClient:
		n, err := tx.Outflows.CountByClient(ref.ID)
		if err != nil {
			return false, err
		}
		counts = append(counts, n)
		n, err = tx.Collections.CountByClient(ref.ID)
		if err != nil {
			return false, err
		}
		counts = append(counts, n)
	}

	n, err := tx.Checks.CountByParty(ref.ID)
	if err != nil {
		return false, err
	}
	counts = append(counts, n)

	for _, c := range counts {
		if c > 0 {
			return false, nil
		}
	}
	return true, nil
}
