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

// IntakeUseCase registra remitos de entrada de fruta de forma transaccional:
// suma stock por pesada, mueve envases, acredita al proveedor en cuenta
// corriente y graba el registro de efectos para la anulación.
type IntakeUseCase struct {
	txRunner  TxRunner
	partyRepo repository.PartyRepository
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(txRunner TxRunner, partyRepo repository.PartyRepository) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner, partyRepo: partyRepo}
}

// WeighInInput una pesada de la balanza.
type WeighInInput struct {
	ProductID  string
	Kg         decimal.Decimal
	PricePerKg decimal.Decimal
}

// ContainerMoveInput deltas de envases declarados en el documento.
type ContainerMoveInput struct {
	ContainerTypeID string
	FullDelta       int
	EmptyDelta      int
	DebtDelta       int
}

// IntakeInput entrada para registrar un remito de entrada.
type IntakeInput struct {
	SupplierID string
	UserID     string
	Number     string
	Date       time.Time
	Notes      string
	WeighIns   []WeighInInput
	Containers []ContainerMoveInput
}

// CreateIntake valida, abre la transacción, aplica deltas de stock y envases,
// asienta el crédito al proveedor y persiste documento y efectos.
func (uc *IntakeUseCase) CreateIntake(ctx context.Context, input IntakeInput) (*entity.GoodsIntake, error) {
	if input.SupplierID == "" || len(input.WeighIns) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, w := range input.WeighIns {
		if w.ProductID == "" || !w.Kg.GreaterThan(decimal.Zero) || w.PricePerKg.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar que el proveedor exista y sea proveedor (fuera de la tx, solo lectura)
	supplier, err := uc.partyRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.Type != entity.PartyTypeSupplier {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	intakeID := uuid.New().String()
	rec := entity.NewEffectRecorder(entity.DocTypeGoodsIntake, intakeID, now)

	intake := &entity.GoodsIntake{
		ID:         intakeID,
		SupplierID: input.SupplierID,
		Number:     input.Number,
		Date:       date,
		Notes:      input.Notes,
		CreatedAt:  now,
		CreatedBy:  input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		total := decimal.Zero
		for _, w := range input.WeighIns {
			product, err := tx.Products.GetForUpdate(w.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			newStock := product.StockKg.Add(w.Kg)
			if err := tx.Products.UpdateStock(w.ProductID, newStock); err != nil {
				return err
			}
			rec.Add(entity.EffectProductStock, w.ProductID, "", w.Kg, "")

			amount := domaincuenta.Round2(w.Kg.Mul(w.PricePerKg))
			total = total.Add(amount)
			intake.WeighIns = append(intake.WeighIns, entity.WeighIn{
				ID:         uuid.New().String(),
				IntakeID:   intakeID,
				ProductID:  w.ProductID,
				Kg:         w.Kg,
				PricePerKg: w.PricePerKg,
				Amount:     amount,
			})
		}
		intake.Total = domaincuenta.Round2(total)

		for _, c := range input.Containers {
			intake.Containers = append(intake.Containers, entity.ContainerMove{
				ContainerTypeID: c.ContainerTypeID,
				FullDelta:       c.FullDelta,
				EmptyDelta:      c.EmptyDelta,
				DebtDelta:       c.DebtDelta,
			})
		}
		if err := applyContainerMoves(tx, input.SupplierID, intake.Containers, rec, now); err != nil {
			return err
		}

		description := fmt.Sprintf("Ingreso de fruta %s", intake.Number)
		if _, err := cuenta.PostInTx(tx, entity.PartyTypeSupplier, input.SupplierID,
			entity.DocTypeGoodsIntake, intakeID, intake.Total, description, date); err != nil {
			return err
		}

		if err := tx.Intakes.Create(intake); err != nil {
			return err
		}
		return tx.Effects.CreateBatch(rec.Effects())
	})
	if err != nil {
		return nil, err
	}
	return intake, nil
}
