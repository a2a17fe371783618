package anulacion_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/application/anulacion"
	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/memory"
	"github.com/frutasur/empaque-api/pkg/logger"
)

type fixture struct {
	st       *memory.Store
	supplier *entity.Party
	client   *entity.Party
	apple    *entity.Product
	bin      *entity.ContainerType
	cashBox  *entity.TreasuryAccount

	undo *anulacion.UndoUseCase
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

	f.bin = &entity.ContainerType{ID: uuid.New().String(), Name: "Bins"}
	require.NoError(t, st.Bundle().Containers.CreateType(f.bin))

	f.cashBox = &entity.TreasuryAccount{ID: uuid.New().String(), Kind: entity.TreasuryKindCashBox, Name: "Caja principal", Balance: decimal.NewFromInt(1000)}
	require.NoError(t, st.Bundle().Treasury.Create(f.cashBox))

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	f.undo = anulacion.NewUndoUseCase(st, log)
	return f
}

func TestUndoIntake_IdaYVuelta(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewIntakeUseCase(f.st, f.st.Parties())

	intake, err := uc.CreateIntake(context.Background(), movimientos.IntakeInput{
		SupplierID: f.supplier.ID,
		Number:     "R-0001",
		WeighIns: []movimientos.WeighInInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(500), PricePerKg: decimal.NewFromFloat(1.5)},
		},
		Containers: []movimientos.ContainerMoveInput{
			{ContainerTypeID: f.bin.ID, FullDelta: 20, DebtDelta: -20},
		},
	})
	require.NoError(t, err)

	result, err := f.undo.UndoIntake(context.Background(), intake.ID)
	require.NoError(t, err)
	require.Len(t, result.Parties, 1)
	assert.Equal(t, f.supplier.ID, result.Parties[0].ID)
	assert.True(t, result.Parties[0].Balance.IsZero())
	assert.True(t, result.Parties[0].Orphaned, "el proveedor quedó sin documentos")

	// Todo vuelve al estado inicial
	product, err := f.st.Bundle().Products.GetByID(f.apple.ID)
	require.NoError(t, err)
	assert.True(t, product.StockKg.Equal(decimal.NewFromInt(1000)), "got %s", product.StockKg)

	stock, err := f.st.Bundle().Containers.GetStockForUpdate(f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock.FullUnits)
	debt, err := f.st.Bundle().Containers.GetDebtForUpdate(f.supplier.ID, f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, debt.Units)

	supplier, err := f.st.Parties().GetByID(f.supplier.ID)
	require.NoError(t, err)
	assert.True(t, supplier.CurrentBalance.IsZero())

	gone, err := f.st.Bundle().Intakes.GetByID(intake.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	effects, err := f.st.Bundle().Effects.ListByDoc(entity.DocTypeGoodsIntake, intake.ID)
	require.NoError(t, err)
	assert.Empty(t, effects, "el registro de efectos se limpia")

	entries, err := f.st.Bundle().Ledger.ListByParty(entity.PartyTypeSupplier, f.supplier.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUndoCollection_RestauraCobroYCartera(t *testing.T) {
	f := newFixture(t)
	outUC := movimientos.NewOutflowUseCase(f.st, f.st.Parties())
	outflow, err := outUC.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(300), UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	collUC := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	collection, err := collUC.CreateCollection(context.Background(), tesoreria.CollectionInput{
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
	checkID := collection.Instruments[1].CheckID

	result, err := f.undo.UndoCollection(context.Background(), collection.ID)
	require.NoError(t, err)
	require.Len(t, result.Parties, 1)
	assert.False(t, result.Parties[0].Orphaned, "la salida sigue existiendo")
	assert.True(t, result.Parties[0].Balance.Equal(decimal.NewFromInt(900)), "vuelve la deuda completa, got %s", result.Parties[0].Balance)

	// La salida vuelve a pendiente
	got, err := f.st.Bundle().Outflows.GetByID(outflow.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountCollected.IsZero())
	assert.Equal(t, entity.PaymentStatusPending, got.PaymentStatus)

	// La caja devuelve el efectivo y el asiento desaparece
	cashBox, err := f.st.Bundle().Treasury.GetByID(f.cashBox.ID)
	require.NoError(t, err)
	assert.True(t, cashBox.Balance.Equal(decimal.NewFromInt(1000)), "got %s", cashBox.Balance)
	entries, err := f.st.Bundle().Treasury.ListEntries(f.cashBox.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// El cheque que nació con la cobranza se elimina
	check, err := f.st.Bundle().Checks.GetByID(checkID)
	require.NoError(t, err)
	assert.Nil(t, check)
}

func TestUndoCollection_ChequeYaDepositado(t *testing.T) {
	f := newFixture(t)
	bank := &entity.TreasuryAccount{ID: uuid.New().String(), Kind: entity.TreasuryKindBank, Name: "Banco Nación", Balance: decimal.Zero}
	require.NoError(t, f.st.Bundle().Treasury.Create(bank))

	collUC := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	collection, err := collUC.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodCheck,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, Amount: decimal.NewFromInt(300), Check: &tesoreria.CheckInput{Number: "1", BankName: "BN"}},
		},
	})
	require.NoError(t, err)

	checkUC := tesoreria.NewCheckUseCase(f.st, f.st.Bundle().Checks)
	_, err = checkUC.Deposit(context.Background(), collection.Instruments[0].CheckID, bank.ID, "")
	require.NoError(t, err)

	_, err = f.undo.UndoCollection(context.Background(), collection.ID)
	assert.ErrorIs(t, err, domain.ErrCheckState, "con el cheque ya depositado la cobranza no se anula")
}

func TestUndoOutflow_ConCobrosAplicados(t *testing.T) {
	f := newFixture(t)
	outUC := movimientos.NewOutflowUseCase(f.st, f.st.Parties())
	outflow, err := outUC.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	collUC := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	collection, err := collUC.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID:  f.client.ID,
		OutflowID: outflow.ID,
		Method:    entity.MethodCash,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCash, TreasuryAccountID: f.cashBox.ID, Amount: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	_, err = f.undo.UndoOutflow(context.Background(), outflow.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "primero se anulan las cobranzas aplicadas")

	// Anulada la cobranza, la salida sí se puede anular
	_, err = f.undo.UndoCollection(context.Background(), collection.ID)
	require.NoError(t, err)
	result, err := f.undo.UndoOutflow(context.Background(), outflow.ID)
	require.NoError(t, err)
	require.Len(t, result.Parties, 1)
	assert.True(t, result.Parties[0].Orphaned)

	product, err := f.st.Bundle().Products.GetByID(f.apple.ID)
	require.NoError(t, err)
	assert.True(t, product.StockKg.Equal(decimal.NewFromInt(1000)), "got %s", product.StockKg)
}

func TestUndoPayment_ChequeVuelveACartera(t *testing.T) {
	f := newFixture(t)
	collUC := tesoreria.NewCollectionUseCase(f.st, f.st.Parties())
	collection, err := collUC.CreateCollection(context.Background(), tesoreria.CollectionInput{
		ClientID: f.client.ID,
		Method:   entity.MethodCheck,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, Amount: decimal.NewFromInt(300), Check: &tesoreria.CheckInput{Number: "1", BankName: "BN"}},
		},
	})
	require.NoError(t, err)
	checkID := collection.Instruments[0].CheckID

	payUC := tesoreria.NewPaymentUseCase(f.st, f.st.Parties())
	payment, err := payUC.CreatePayment(context.Background(), tesoreria.PaymentInput{
		SupplierID: f.supplier.ID,
		Method:     entity.MethodCheck,
		Instruments: []tesoreria.InstrumentInput{
			{Kind: entity.InstrumentCheck, CheckID: checkID, Amount: decimal.NewFromInt(300)},
		},
	})
	require.NoError(t, err)

	result, err := f.undo.UndoPayment(context.Background(), payment.ID)
	require.NoError(t, err)
	require.Len(t, result.Parties, 1)
	assert.Equal(t, f.supplier.ID, result.Parties[0].ID)

	check, err := f.st.Bundle().Checks.GetByID(checkID)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckStatusInPortfolio, check.Status)
	assert.Empty(t, check.PaymentID)

	supplier, err := f.st.Parties().GetByID(f.supplier.ID)
	require.NoError(t, err)
	assert.True(t, supplier.CurrentBalance.IsZero(), "got %s", supplier.CurrentBalance)
}

func TestUndo_DocumentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.undo.UndoIntake(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
