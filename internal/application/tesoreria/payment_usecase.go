package tesoreria

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

// PaymentUseCase registra pagos a proveedores. Los instrumentos efectivo y
// transferencia descuentan de tesorería; un cheque en cartera se endosa al
// proveedor. Todo en una transacción, con registro de efectos.
type PaymentUseCase struct {
	txRunner  TxRunner
	partyRepo repository.PartyRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner, partyRepo repository.PartyRepository) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, partyRepo: partyRepo}
}

// PaymentInput entrada para registrar un pago. Retention es opcional: monto
// retenido que se asienta como débito aparte sin mover tesorería.
type PaymentInput struct {
	SupplierID  string
	UserID      string
	Method      string
	Date        time.Time
	Notes       string
	Retention   decimal.Decimal
	Instruments []InstrumentInput
}

// CreatePayment valida, abre la transacción, aplica cada instrumento, debita al
// proveedor y persiste documento y efectos.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input PaymentInput) (*entity.Payment, error) {
	if input.SupplierID == "" || len(input.Instruments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateMethod(input.Method, input.Instruments); err != nil {
		return nil, err
	}
	if input.Retention.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, ins := range input.Instruments {
		if !ins.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		switch ins.Kind {
		case entity.InstrumentCash, entity.InstrumentTransfer:
			if ins.TreasuryAccountID == "" {
				return nil, domain.ErrInvalidInput
			}
		case entity.InstrumentCheck:
			if ins.CheckID == "" {
				return nil, domain.ErrInvalidInput
			}
		default:
			return nil, domain.ErrInvalidInput
		}
	}

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
	paymentID := uuid.New().String()
	rec := entity.NewEffectRecorder(entity.DocTypePayment, paymentID, now)

	payment := &entity.Payment{
		ID:         paymentID,
		SupplierID: input.SupplierID,
		Method:     input.Method,
		Date:       date,
		Notes:      input.Notes,
		CreatedAt:  now,
		CreatedBy:  input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		total := decimal.Zero
		for _, ins := range input.Instruments {
			amount := domaincuenta.Round2(ins.Amount)
			instrument := entity.Instrument{
				ID:      uuid.New().String(),
				DocType: entity.DocTypePayment,
				DocID:   paymentID,
				Kind:    ins.Kind,
				Amount:  amount,
			}

			switch ins.Kind {
			case entity.InstrumentCash, entity.InstrumentTransfer:
				instrument.TreasuryAccountID = ins.TreasuryAccountID
				if err := debitTreasury(tx, rec, ins.TreasuryAccountID, amount, now,
					entity.DocTypePayment, paymentID,
					fmt.Sprintf("Pago a %s", supplier.Name), input.UserID, date); err != nil {
					return err
				}
			case entity.InstrumentCheck:
				check, err := tx.Checks.GetForUpdate(ins.CheckID)
				if err != nil {
					return err
				}
				if check == nil {
					return domain.ErrNotFound
				}
				if check.Status != entity.CheckStatusInPortfolio {
					return domain.ErrCheckState
				}
				// El monto del instrumento es el nominal del cheque, no lo que
				// haya declarado el llamador.
				amount = check.Amount
				instrument.Amount = amount
				prev := check.Status
				check.Status = entity.CheckStatusEndorsed
				check.PaymentID = paymentID
				check.UpdatedAt = now
				if err := tx.Checks.Update(check); err != nil {
					return err
				}
				rec.Add(entity.EffectCheckStatus, check.ID, "", decimal.Zero, prev)
				instrument.CheckID = check.ID
			}
			total = total.Add(amount)
			payment.Instruments = append(payment.Instruments, instrument)
		}
		payment.Total = domaincuenta.Round2(total)

		description := fmt.Sprintf("Pago %s", payment.Method)
		if _, err := cuenta.PostInTx(tx, entity.PartyTypeSupplier, input.SupplierID,
			entity.DocTypePayment, paymentID, payment.Total, description, date); err != nil {
			return err
		}

		if input.Retention.GreaterThan(decimal.Zero) {
			payment.Retention = domaincuenta.Round2(input.Retention)
			if _, err := cuenta.PostInTx(tx, entity.PartyTypeSupplier, input.SupplierID,
				entity.DocTypeRetention, paymentID, payment.Retention, "Retención impositiva", date); err != nil {
				return err
			}
		}

		if err := tx.Payments.Create(payment); err != nil {
			return err
		}
		return tx.Effects.CreateBatch(rec.Effects())
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// debitTreasury resta del saldo de la cuenta con bloqueo de fila y deja el
// asiento de egreso enlazado al documento.
func debitTreasury(tx repository.Tx, rec *entity.EffectRecorder, accountID string, amount decimal.Decimal, now time.Time, docType, docID, concept, userID string, date time.Time) error {
	account, err := tx.Treasury.GetForUpdate(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if err := tx.Treasury.UpdateBalance(accountID, domaincuenta.Round2(account.Balance.Sub(amount))); err != nil {
		return err
	}
	rec.Add(entity.EffectTreasuryBalance, accountID, "", amount.Neg(), "")
	return tx.Treasury.CreateEntry(&entity.TreasuryEntry{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Kind:      entity.TreasuryEntryExpense,
		Amount:    amount,
		Concept:   concept,
		DocType:   docType,
		DocID:     docID,
		Date:      date,
		CreatedAt: now,
		CreatedBy: userID,
	})
}
