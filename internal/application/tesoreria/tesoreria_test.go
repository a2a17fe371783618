package tesoreria_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/memory"
)

type fixture struct {
	st       *memory.Store
	supplier *entity.Party
	client   *entity.Party
	apple    *entity.Product
	cashBox  *entity.TreasuryAccount
	bank     *entity.TreasuryAccount
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	f := &fixture{st: st}

	f.supplier = &entity.Party{ID: uuid.New().String(), Type: entity.PartyTypeSupplier, Name: "Finca La Esperanza"}
	require.NoError(t, st.Parties().Create(f.supplier))
	f.client = &entity.Party{ID: uuid.New().String(), Type: entity.PartyTypeClient, Name: "Mercado Central"}
	require.NoError(t, st.Parties().Create(f.client))

	f.apple = &entity.Product{ID: uuid.New().String(), Name: "Manzana", Variety: "Fuji", StockKg: decimal.NewFromInt(1000)}
	require.NoError(t, st.Bundle().Products.Create(f.apple))

	f.cashBox = &entity.TreasuryAccount{ID: uuid.New().String(), Kind: entity.TreasuryKindCashBox, Name: "Caja principal", Balance: decimal.NewFromInt(1000)}
	require.NoError(t, st.Bundle().Treasury.Create(f.cashBox))
	f.bank = &entity.TreasuryAccount{ID: uuid.New().String(), Kind: entity.TreasuryKindBank, Name: "Banco Nación", Balance: decimal.NewFromInt(5000)}
	require.NoError(t, st.Bundle().Treasury.Create(f.bank))
	return f
}

// sellTo registra una salida de 900 al cliente para tener deuda que cobrar.
func (f *fixture) sellTo(t *testing.T) *entity.SalesOutflow {
	t.Helper()
	uc := movimientos.NewOutflowUseCase(f.st, f.st.Parties())
	outflow, err := uc.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Number:   "S-0001",
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(300), UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	return outflow
}

func TestCreateCollection_MixtaConUmbralParcial(t *testing.T) {
	f := newFixture(t)
	outflow := f.sellTo(t)
	uc := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())

	collection, err := uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID:  f.client.ID,
		OutflowID: outflow.ID,
		Method:    entity.MethodMixed,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(200)},
			{Kind: entity.InstrumentCheck, Amount: decimal.NewFromInt(300), Check: &tesoreria.CheckInput{
				Number: "00012345", BankName: "Banco Nación", DueDate: time.Now().AddDate(0, 1, 0),
			}},
		},
	})
	require.NoError(t, err)
	assert.True(t, collection.Total.Equal(decimal.NewFromInt(500)))
	require.Len(t, collection.Instruments, 2)

	// La caja sube solo por el efectivo
	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(1200)), "got %s", cashBox.Balance)
	entries, err := f.st.Bundle().Treasury.ListEntries(f.cashBox.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryEntryIncome, entries[0].Kind)
	assert.Equal(t, entity.DocTypeCollection, entries[0].DocType)

	// El cheque entra en cartera por su nominal
	check, err := f.st.Bundle().Checks.GetByID(collection.Instruments[1].CheckID)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckStatusInPortfolio, check.Status)
	assert.True(t, check.Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, collection.ID, check.CollectionID)

	// Cobrados 500 de 900: estado parcial
	got, err := f.st.Bundle().Outflows.GetByID(outflow.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountCollected.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, entity.PaymentStatusPartial, got.PaymentStatus)

	// El cliente debía 900, cobramos 500, debe 400
	client, err := f.st.Parties().GetByID(f.client.ID)
	require.NoError(t, err)
	assert.True(t, client.CurrentBalance.Equal(decimal.NewFromInt(400)), "got %s", client.CurrentBalance)
}

func TestCreateCollection_UmbralCobrada(t *testing.T) {
	f := newFixture(t)
	outflow := f.sellTo(t)
	uc := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())

	_, err := uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID:  f.client.ID,
		OutflowID: outflow.ID,
		Method:    entity.MethodCash,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(900)},
		},
	})
	require.NoError(t, err)

	got, err := f.st.Bundle().Outflows.GetByID(outflow.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCollected, got.PaymentStatus)

	client, err := f.st.Parties().GetByID(f.client.ID)
	require.NoError(t, err)
	assert.True(t, client.CurrentBalance.IsZero(), "got %s", client.CurrentBalance)
}

func TestCreateCollection_MetodoIncoherente(t *testing.T) {
	f := newFixture(t)
	uc := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())

	// mixed con un solo instrumento
	_, err := uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodMixed,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cash con instrumento cheque
	_, err = uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodCash,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, Amount: decimal.NewFromInt(10), Check: &tesoreria.CheckInput{Number: "1"}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCollection_SalidaDeOtroCliente(t *testing.T) {
	f := newFixture(t)
	outflow := f.sellTo(t)
	other := &entity.Party{ID: uuid.New().String(), Type: entity.PartyTypeClient, Name: "Otro Cliente"}
	require.NoError(t, f.st.Parties().Create(other))

	uc := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	_, err := uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID:  other.ID,
		OutflowID: outflow.ID,
		Method:    entity.MethodCash,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// collectCheck deja un cheque de 300 en cartera vía una cobranza.
func (f *fixture) collectCheck(t *testing.T) *entity.Check {
	t.Helper()
	uc := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	collection, err := uc.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodCheck,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, Amount: decimal.NewFromInt(300), Check: &tesoreria.CheckInput{
				Number: "00012345", BankName: "Banco Nación", DueDate: time.Now().AddDate(0, 1, 0),
			}},
		},
	})
	require.NoError(t, err)
	check, err := f.st.Bundle().Checks.GetByID(collection.Instruments[0].CheckID)
	require.NoError(t, err)
	return check
}

func TestCreatePayment_ChequeEndosado(t *testing.T) {
	f := newFixture(t)
	check := f.collectCheck(t)

	// El proveedor arranca con crédito por un ingreso previo (le debemos 1000)
	require.NoError(t, f.st.Parties().UpdateBalance(f.supplier.ID, decimal.NewFromInt(-1000)))

	uc := tesoreria.NewPaymentUseCase(f.st, f.st.Parties())
	payment, err := uc.CreatePayment(context.Background(), tesoreria.PaymentInput{
		SupplierID: f.supplier.ID,
		Method:     entity.MethodMixed,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(100)},
			{Kind: entity.InstrumentCheck, CheckID: check.ID, Amount: decimal.NewFromInt(1)}, // el nominal manda
		},
	})
	require.NoError(t, err)
	assert.True(t, payment.Total.Equal(decimal.NewFromInt(400)), "100 efectivo + 300 nominal, got %s", payment.Total)

	got, err := f.st.Bundle().Checks.GetByID(check.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckStatusEndorsed, got.Status)
	assert.Equal(t, payment.ID, got.PaymentID)

	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(900)), "got %s", cashBox.Balance)

	supplier, err := f.st.Parties().GetByID(f.supplier.ID)
	require.NoError(t, err)
	assert.True(t, supplier.CurrentBalance.Equal(decimal.NewFromInt(-600)), "debíamos 1000, pagamos 400, got %s", supplier.CurrentBalance)
}

func TestCreatePayment_ConRetencion(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.st.Parties().UpdateBalance(f.supplier.ID, decimal.NewFromInt(-1000)))

	uc := tesoreria.NewPaymentUseCase(f.st, f.st.Parties())
	payment, err := uc.CreatePayment(context.Background(), tesoreria.PaymentInput{
		SupplierID: f.supplier.ID,
		Method:     entity.MethodCash,
		Retention:  decimal.NewFromInt(50),
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	assert.True(t, payment.Retention.Equal(decimal.NewFromInt(50)))

	// Débito del pago más débito de la retención: debíamos 1000, quedan 850
	supplier, err := f.st.Parties().GetByID(f.supplier.ID)
	require.NoError(t, err)
	assert.True(t, supplier.CurrentBalance.Equal(decimal.NewFromInt(-850)), "got %s", supplier.CurrentBalance)

	entries, err := f.st.Bundle().Ledger.ListByDoc(entity.DocTypeRetention, payment.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.DirectionDebit, entries[0].Direction)

	// La retención no toca tesorería
	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(900)), "solo salió el efectivo, got %s", cashBox.Balance)
}

func TestCreatePayment_ChequeFueraDeCartera(t *testing.T) {
	f := newFixture(t)
	check := f.collectCheck(t)

	checkUC := tesoreria.NewCheckUseCase(f.st, f.st.Bundle().Checks)
	_, err := checkUC.Deposit(context.Background(), check.ID, f.bank.ID, "")
	require.NoError(t, err)

	uc := tesoreria.NewPaymentUseCase(f.st, f.st.Parties())
	_, err = uc.CreatePayment(context.Background(), tesoreria.PaymentInput{
		SupplierID: f.supplier.ID,
		Method:     entity.MethodCheck,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, CheckID: check.ID, Amount: decimal.NewFromInt(300)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrCheckState)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)
	check := f.collectCheck(t)
	uc := tesoreria.NewCheckUseCase(f.st, f.st.Bundle().Checks)

	deposited, err := uc.Deposit(context.Background(), check.ID, f.bank.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.CheckStatusDeposited, deposited.Status)
	assert.Equal(t, f.bank.ID, deposited.DepositBank)

	bank, err := f.st.Bundle().Treasury.GetByID(f.bank.ID)
	require.NoError(t, err)
	assert.True(t, bank.Balance.Equal(decimal.NewFromInt(5300)), "got %s", bank.Balance)

	entries, err := f.st.Bundle().Treasury.ListEntries(f.bank.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, check.ID, entries[0].DocID)

	// Segundo depósito del mismo cheque: transición inválida
	_, err = uc.Deposit(context.Background(), check.ID, f.bank.ID, "")
	assert.ErrorIs(t, err, domain.ErrCheckState)
}

func TestDeposit_EnCaja(t *testing.T) {
	f := newFixture(t)
	check := f.collectCheck(t)
	uc := tesoreria.NewCheckUseCase(f.st, f.st.Bundle().Checks)

	_, err := uc.Deposit(context.Background(), check.ID, f.cashBox.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un cheque se deposita en banco, no en caja")
}

func TestUpdateStatus_Rechazo(t *testing.T) {
	f := newFixture(t)
	check := f.collectCheck(t)
	uc := tesoreria.NewCheckUseCase(f.st, f.st.Bundle().Checks)

	rejected, err := uc.UpdateStatus(context.Background(), check.ID, entity.CheckStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckStatusRejected, rejected.Status)

	// Un cheque rechazado no vuelve a cartera
	_, err = uc.UpdateStatus(context.Background(), check.ID, entity.CheckStatusInPortfolio)
	assert.ErrorIs(t, err, domain.ErrCheckState)
}

func TestDeleteAccount_ConHistorial(t *testing.T) {
	f := newFixture(t)
	uc := tesoreria.NewTreasuryUseCase(f.st, f.st.Bundle().Treasury)

	_, err := uc.CreateManualEntry(context.Background(), tesoreria.ManualEntryInput{
		AccountID: f.cashBox.ID,
		Kind:      entity.TreasuryEntryExpense,
		Amount:    decimal.NewFromInt(50),
		Concept:   "Librería",
	})
	require.NoError(t, err)

	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(950)), "got %s", cashBox.Balance)

	err = uc.DeleteAccount(context.Background(), f.cashBox.ID)
	assert.ErrorIs(t, err, domain.ErrAccountHasHistory)

	// Sin movimientos sí se puede borrar
	empty, err := uc.CreateAccount(context.Background(), tesoreria.AccountInput{Kind: entity.TreasuryKindCashBox, Name: "Caja chica"})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteAccount(context.Background(), empty.ID))
}

func TestDeleteManualEntry_RevierteSaldo(t *testing.T) {
	f := newFixture(t)
	uc := tesoreria.NewTreasuryUseCase(f.st, f.st.Bundle().Treasury)

	entry, err := uc.CreateManualEntry(context.Background(), tesoreria.ManualEntryInput{
		AccountID: f.cashBox.ID,
		Kind:      entity.TreasuryEntryIncome,
		Amount:    decimal.NewFromInt(200),
		Concept:   "Aporte",
	})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteManualEntry(context.Background(), entry.ID))

	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(1000)), "got %s", cashBox.Balance)
}

func TestDeleteManualEntry_AsientoDeDocumento(t *testing.T) {
	f := newFixture(t)
	f.sellTo(t)
	collUC := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	_, err := collUC.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodCash,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	entries, err := f.st.Bundle().Treasury.ListEntries(f.cashBox.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	uc := tesoreria.NewTreasuryUseCase(f.st, f.st.Bundle().Treasury)
	err = uc.DeleteManualEntry(context.Background(), entries[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "los asientos de documentos se revierten anulando el documento")
}
