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

// CollectionUseCase registra cobranzas a clientes. Con método mixed la cobranza
// se abre en varios instrumentos: cada efectivo/transferencia muta su cuenta de
// tesorería y cada cheque entra en cartera, todo en una sola transacción y con
// registro de efectos para la anulación.
type CollectionUseCase struct {
	txRunner  TxRunner
	partyRepo repository.PartyRepository
}

// NewCollectionUseCase construye el caso de uso.
func NewCollectionUseCase(txRunner TxRunner, partyRepo repository.PartyRepository) *CollectionUseCase {
	return &CollectionUseCase{txRunner: txRunner, partyRepo: partyRepo}
}

// CheckInput datos de un cheque recibido en la cobranza.
type CheckInput struct {
	Number    string
	BankName  string
	IssueDate time.Time
	DueDate   time.Time
}

// InstrumentInput una pata de la cobranza o pago.
type InstrumentInput struct {
	Kind              string // cash | transfer | check
	TreasuryAccountID string // para cash/transfer
	Amount            decimal.Decimal
	Check             *CheckInput // para check (cobranza: alta en cartera)
	CheckID           string      // para check (pago: endoso de un cheque en cartera)
}

// CollectionInput entrada para registrar una cobranza.
type CollectionInput struct {
	ClientID    string
	OutflowID   string // opcional: aplica el cobro a una salida concreta
	UserID      string
	Method      string
	Date        time.Time
	Notes       string
	Instruments []InstrumentInput
}

// CreateCollection valida, abre la transacción, aplica cada instrumento,
// actualiza el estado de cobro de la salida (si corresponde) por umbrales,
// acredita al cliente y persiste documento y efectos.
func (uc *CollectionUseCase) CreateCollection(ctx context.Context, input CollectionInput) (*entity.Collection, error) {
	if input.ClientID == "" || len(input.Instruments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateMethod(input.Method, input.Instruments); err != nil {
		return nil, err
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
			if ins.Check == nil || ins.Check.Number == "" {
				return nil, domain.ErrInvalidInput
			}
		default:
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
	collectionID := uuid.New().String()
	rec := entity.NewEffectRecorder(entity.DocTypeCollection, collectionID, now)

	collection := &entity.Collection{
		ID:        collectionID,
		ClientID:  input.ClientID,
		OutflowID: input.OutflowID,
		Method:    input.Method,
		Date:      date,
		Notes:     input.Notes,
		CreatedAt: now,
		CreatedBy: input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		total := decimal.Zero
		for _, ins := range input.Instruments {
			amount := domaincuenta.Round2(ins.Amount)
			total = total.Add(amount)
			instrument := entity.Instrument{
				ID:      uuid.New().String(),
				DocType: entity.DocTypeCollection,
				DocID:   collectionID,
				Kind:    ins.Kind,
				Amount:  amount,
			}

			switch ins.Kind {
			case entity.InstrumentCash, entity.InstrumentTransfer:
				instrument.TreasuryAccountID = ins.TreasuryAccountID
				if err := creditTreasury(tx, rec, ins.TreasuryAccountID, amount, now,
					entity.DocTypeCollection, collectionID,
					fmt.Sprintf("Cobranza a %s", client.Name), input.UserID, date); err != nil {
					return err
				}
			case entity.InstrumentCheck:
				// Alta del cheque directo en cartera; PrevValue vacío marca que el
				// documento lo creó (la anulación lo elimina en vez de restaurarlo).
				check := &entity.Check{
					ID:           uuid.New().String(),
					Number:       ins.Check.Number,
					BankName:     ins.Check.BankName,
					Amount:       amount,
					IssueDate:    ins.Check.IssueDate,
					DueDate:      ins.Check.DueDate,
					Status:       entity.CheckStatusInPortfolio,
					PartyID:      input.ClientID,
					CollectionID: collectionID,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if err := tx.Checks.Create(check); err != nil {
					return err
				}
				rec.Add(entity.EffectCheckStatus, check.ID, "", decimal.Zero, "")
				instrument.CheckID = check.ID
			}
			collection.Instruments = append(collection.Instruments, instrument)
		}
		collection.Total = domaincuenta.Round2(total)

		if input.OutflowID != "" {
			if err := applyToOutflow(tx, rec, input.OutflowID, input.ClientID, collection.Total); err != nil {
				return err
			}
		}

		description := fmt.Sprintf("Cobranza %s", collection.Method)
		if _, err := cuenta.PostInTx(tx, entity.PartyTypeClient, input.ClientID,
			entity.DocTypeCollection, collectionID, collection.Total, description, date); err != nil {
			return err
		}

		if err := tx.Collections.Create(collection); err != nil {
			return err
		}
		return tx.Effects.CreateBatch(rec.Effects())
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// validateMethod exige mixed para varios instrumentos y coherencia para uno solo.
func validateMethod(method string, instruments []InstrumentInput) error {
	switch method {
	case entity.MethodMixed:
		if len(instruments) < 2 {
			return domain.ErrInvalidInput
		}
		return nil
	case entity.MethodCash, entity.MethodTransfer, entity.MethodCheck:
		if len(instruments) != 1 || instruments[0].Kind != method {
			return domain.ErrInvalidInput
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// creditTreasury suma al saldo de la cuenta con bloqueo de fila, deja el
// asiento de tesorería enlazado al documento y registra el efecto.
func creditTreasury(tx repository.Tx, rec *entity.EffectRecorder, accountID string, amount decimal.Decimal, now time.Time, docType, docID, concept, userID string, date time.Time) error {
	account, err := tx.Treasury.GetForUpdate(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if err := tx.Treasury.UpdateBalance(accountID, domaincuenta.Round2(account.Balance.Add(amount))); err != nil {
		return err
	}
	rec.Add(entity.EffectTreasuryBalance, accountID, "", amount, "")
	return tx.Treasury.CreateEntry(&entity.TreasuryEntry{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Kind:      entity.TreasuryEntryIncome,
		Amount:    amount,
		Concept:   concept,
		DocType:   docType,
		DocID:     docID,
		Date:      date,
		CreatedAt: now,
		CreatedBy: userID,
	})
}

// applyToOutflow acumula el cobro sobre la salida y recalcula el estado por
// umbrales (cobrado >= deuda -> collected; parcial -> partial).
func applyToOutflow(tx repository.Tx, rec *entity.EffectRecorder, outflowID, clientID string, amount decimal.Decimal) error {
	outflow, err := tx.Outflows.GetForUpdate(outflowID)
	if err != nil {
		return err
	}
	if outflow == nil {
		return domain.ErrNotFound
	}
	if outflow.ClientID != clientID {
		return domain.ErrConflict
	}
	newCollected := domaincuenta.Round2(outflow.AmountCollected.Add(amount))
	status := entity.StatusFor(outflow.DebtTotal, newCollected)
	if err := tx.Outflows.UpdateCollected(outflowID, newCollected, status); err != nil {
		return err
	}
	rec.Add(entity.EffectOutflowCollected, outflowID, "", amount, "")
	return nil
}
