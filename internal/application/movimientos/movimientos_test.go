package movimientos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/memory"
)

type fixture struct {
	st       *memory.Store
	supplier *entity.Party
	client   *entity.Party
	apple    *entity.Product
	bin      *entity.ContainerType
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
	return f
}

func TestCreateIntake(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewIntakeUseCase(f.st, f.st.Parties())

	intake, err := uc.CreateIntake(context.Background(), movimientos.IntakeInput{
		SupplierID: f.supplier.ID,
		Number:     "R-0001",
		WeighIns: []movimientos.WeighInInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(500), PricePerKg: decimal.NewFromFloat(1.5)},
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(200), PricePerKg: decimal.NewFromInt(2)},
		},
		Containers: []movimientos.ContainerMoveInput{
			{ContainerTypeID: f.bin.ID, FullDelta: 20, DebtDelta: -20},
		},
	})
	require.NoError(t, err)

	// Total: 500*1.5 + 200*2 = 1150
	assert.True(t, intake.Total.Equal(decimal.NewFromInt(1150)), "got %s", intake.Total)
	require.Len(t, intake.WeighIns, 2)

	// Stock de fruta: 1000 + 700
	product, err := f.st.Bundle().Products.GetByID(f.apple.ID)
	require.NoError(t, err)
	assert.True(t, product.StockKg.Equal(decimal.NewFromInt(1700)), "got %s", product.StockKg)

	// Envases: 20 llenos ingresaron, la deuda del proveedor baja 20 (le debemos bins)
	stock, err := f.st.Bundle().Containers.GetStockForUpdate(f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, stock.FullUnits)
	debt, err := f.st.Bundle().Containers.GetDebtForUpdate(f.supplier.ID, f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, -20, debt.Units)

	// Cuenta corriente: crédito de 1150, le debemos al proveedor
	supplier, err := f.st.Parties().GetByID(f.supplier.ID)
	require.NoError(t, err)
	assert.True(t, supplier.CurrentBalance.Equal(decimal.NewFromInt(-1150)), "got %s", supplier.CurrentBalance)

	entries, err := f.st.Bundle().Ledger.ListByDoc(entity.DocTypeGoodsIntake, intake.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.DirectionCredit, entries[0].Direction)
	assert.True(t, entries[0].BalanceAfter.Equal(decimal.NewFromInt(-1150)))

	// Registro de efectos: 2 de stock + 1 de llenos + 1 de deuda de envases
	effects, err := f.st.Bundle().Effects.ListByDoc(entity.DocTypeGoodsIntake, intake.ID)
	require.NoError(t, err)
	require.Len(t, effects, 4)
	assert.Equal(t, entity.EffectProductStock, effects[0].Type)
	for i, e := range effects {
		assert.Equal(t, i+1, e.Seq, "secuencia contigua")
	}
}

func TestCreateIntake_ParteInvalida(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewIntakeUseCase(f.st, f.st.Parties())

	// Un cliente no puede ser origen de un ingreso
	_, err := uc.CreateIntake(context.Background(), movimientos.IntakeInput{
		SupplierID: f.client.ID,
		WeighIns:   []movimientos.WeighInInput{{ProductID: f.apple.ID, Kg: decimal.NewFromInt(10), PricePerKg: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateIntake_PesadaInvalida(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewIntakeUseCase(f.st, f.st.Parties())

	_, err := uc.CreateIntake(context.Background(), movimientos.IntakeInput{
		SupplierID: f.supplier.ID,
		WeighIns:   []movimientos.WeighInInput{{ProductID: f.apple.ID, Kg: decimal.Zero, PricePerKg: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOutflow(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewOutflowUseCase(f.st, f.st.Parties())

	outflow, err := uc.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Number:   "S-0001",
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(300), UnitPrice: decimal.NewFromInt(3)},
		},
		Containers: []movimientos.ContainerMoveInput{
			{ContainerTypeID: f.bin.ID, FullDelta: -12, DebtDelta: 12},
		},
	})
	require.NoError(t, err)

	assert.True(t, outflow.DebtTotal.Equal(decimal.NewFromInt(900)), "got %s", outflow.DebtTotal)
	assert.True(t, outflow.AmountCollected.IsZero())
	assert.Equal(t, entity.PaymentStatusPending, outflow.PaymentStatus)

	product, err := f.st.Bundle().Products.GetByID(f.apple.ID)
	require.NoError(t, err)
	assert.True(t, product.StockKg.Equal(decimal.NewFromInt(700)), "got %s", product.StockKg)

	// El cliente nos debe 900
	client, err := f.st.Parties().GetByID(f.client.ID)
	require.NoError(t, err)
	assert.True(t, client.CurrentBalance.Equal(decimal.NewFromInt(900)), "got %s", client.CurrentBalance)

	// 12 bins salieron llenos y el cliente los adeuda
	stock, err := f.st.Bundle().Containers.GetStockForUpdate(f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, -12, stock.FullUnits)
	debt, err := f.st.Bundle().Containers.GetDebtForUpdate(f.client.ID, f.bin.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, debt.Units)
}

func TestCreateOutflow_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewOutflowUseCase(f.st, f.st.Parties())

	_, err := uc.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(1001), UnitPrice: decimal.NewFromInt(3)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateOutflow_EnvaseInexistente(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewOutflowUseCase(f.st, f.st.Parties())

	_, err := uc.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1)},
		},
		Containers: []movimientos.ContainerMoveInput{
			{ContainerTypeID: uuid.New().String(), FullDelta: -1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOutflow_RedondeoImporte(t *testing.T) {
	f := newFixture(t)
	uc := movimientos.NewOutflowUseCase(f.st, f.st.Parties())

	// 33.333 kg * 1.5 = 49.9995 -> 50.00
	outflow, err := uc.CreateOutflow(context.Background(), movimientos.OutflowInput{
		ClientID: f.client.ID,
		Lines: []movimientos.OutflowLineInput{
			{ProductID: f.apple.ID, Kg: decimal.NewFromFloat(33.333), UnitPrice: decimal.NewFromFloat(1.5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, outflow.DebtTotal.Equal(decimal.NewFromInt(50)), "got %s", outflow.DebtTotal)
}
