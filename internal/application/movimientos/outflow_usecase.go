package movimientos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// OutflowUseCase registra salidas de fruta a clientes: descuenta stock con
// bloqueo de fila, entrega envases, debita al cliente y graba el registro de
// efectos. La salida nace pendiente de cobro (deuda total, cobrado 0).
type OutflowUseCase struct {
	txRunner  TxRunner
	partyRepo repository.PartyRepository
}

// NewOutflowUseCase construye el caso de uso.
func NewOutflowUseCase(txRunner TxRunner, partyRepo repository.PartyRepository) *OutflowUseCase {
	return &OutflowUseCase{txRunner: txRunner, partyRepo: partyRepo}
}

// OutflowLineInput una línea de venta.
type OutflowLineInput struct {
	ProductID string
	Kg        decimal.Decimal
	UnitPrice decimal.Decimal
}

// OutflowInput entrada para registrar una salida.
type OutflowInput struct {
	ClientID   string
	UserID     string
	Number     string
	Date       time.Time
	Notes      string
	Lines      []OutflowLineInput
	Containers []ContainerMoveInput
}

// CreateOutflow valida, abre la transacción, descuenta stock (falla con
// ErrInsufficientStock si no alcanza), asienta el débito al cliente y persiste
// documento y efectos.
func (uc *OutflowUseCase) CreateOutflow(ctx context.Context, input OutflowInput) (*entity.SalesOutflow, error) {
	if input.ClientID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range input.Lines {
		if l.ProductID == "" || !l.Kg.GreaterThan(decimal.Zero) || l.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	client, err := uc.partyRepo.GetByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Type != entity.PartyTypeClient {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	outflowID := uuid.New().String()
	rec := entity.NewEffectRecorder(entity.DocTypeGoodsOutflow, outflowID, now)

	outflow := &entity.SalesOutflow{
		ID:              outflowID,
		ClientID:        input.ClientID,
		Number:          input.Number,
		Date:            date,
		Notes:           input.Notes,
		AmountCollected: decimal.Zero,
		PaymentStatus:   entity.PaymentStatusPending,
		CreatedAt:       now,
		CreatedBy:       input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		total := decimal.Zero
		for _, l := range input.Lines {
			product, err := tx.Products.GetForUpdate(l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.StockKg.LessThan(l.Kg) {
				return domain.ErrInsufficientStock
			}
			if err := tx.Products.UpdateStock(l.ProductID, product.StockKg.Sub(l.Kg)); err != nil {
				return err
			}
			rec.Add(entity.EffectProductStock, l.ProductID, "", l.Kg.Neg(), "")

			amount := domaincuenta.Round2(l.Kg.Mul(l.UnitPrice))
			total = total.Add(amount)
			outflow.Lines = append(outflow.Lines, entity.OutflowLine{
				ID:        uuid.New().String(),
				OutflowID: outflowID,
				ProductID: l.ProductID,
				Kg:        l.Kg,
				UnitPrice: l.UnitPrice,
				Amount:    amount,
			})
		}
		outflow.DebtTotal = domaincuenta.Round2(total)

		for _, c := range input.Containers {
			outflow.Containers = append(outflow.Containers, entity.ContainerMove{
				ContainerTypeID: c.ContainerTypeID,
				FullDelta:       c.FullDelta,
				EmptyDelta:      c.EmptyDelta,
				DebtDelta:       c.DebtDelta,
			})
		}
		if err := applyContainerMoves(tx, input.ClientID, outflow.Containers, rec, now); err != nil {
			return err
		}

		description := fmt.Sprintf("Salida de fruta %s", outflow.Number)
		if _, err := cuenta.PostInTx(tx, entity.PartyTypeClient, input.ClientID,
			entity.DocTypeGoodsOutflow, outflowID, outflow.DebtTotal, description, date); err != nil {
			return err
		}

		if err := tx.Outflows.Create(outflow); err != nil {
			return err
		}
		return tx.Effects.CreateBatch(rec.Effects())
	})
	if err != nil {
		return nil, err
	}
	return outflow, nil
}
