package cuenta_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
	"github.com/frutasur/empaque-api/internal/infrastructure/memory"
	"github.com/frutasur/empaque-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func seedParty(t *testing.T, st *memory.Store, partyType, name string, balance decimal.Decimal) *entity.Party {
	t.Helper()
	p := &entity.Party{
		ID:             uuid.New().String(),
		Type:           partyType,
		Name:           name,
		CurrentBalance: balance,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, st.Parties().Create(p))
	return p
}

func seedEntry(t *testing.T, st *memory.Store, party *entity.Party, direction string, amount, balanceAfter decimal.Decimal, date time.Time) {
	t.Helper()
	require.NoError(t, st.Bundle().Ledger.Create(&entity.LedgerEntry{
		ID:           uuid.New().String(),
		PartyType:    party.Type,
		PartyID:      party.ID,
		Direction:    direction,
		Amount:       amount,
		DocType:      entity.DocTypeGoodsOutflow,
		DocID:        uuid.New().String(),
		BalanceAfter: balanceAfter,
		Date:         date,
		CreatedAt:    time.Now(),
	}))
}

func TestRecomputeBalance_SinAsientos(t *testing.T) {
	st := memory.NewStore()
	client := seedParty(t, st, entity.PartyTypeClient, "Verdulería Norte", decimal.NewFromInt(500))
	rec := cuenta.NewReconciler(st, st.Parties(), testLogger())

	res, err := rec.RecomputeBalance(context.Background(), entity.PartyTypeClient, client.ID)
	require.NoError(t, err)
	assert.True(t, res.Balance.IsZero(), "sin asientos el saldo es cero")
	assert.True(t, res.Drifted, "el saldo cacheado en 500 estaba desviado")

	got, err := st.Parties().GetByID(client.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero())
}

func TestRecomputeBalance_CorrigeDerivaEIdempotencia(t *testing.T) {
	st := memory.NewStore()
	client := seedParty(t, st, entity.PartyTypeClient, "Mercado Central", decimal.NewFromInt(999))
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Débito 100 y crédito 30 con snapshots desviados a propósito
	seedEntry(t, st, client, entity.DirectionDebit, decimal.NewFromInt(100), decimal.NewFromInt(55), base)
	seedEntry(t, st, client, entity.DirectionCredit, decimal.NewFromInt(30), decimal.NewFromInt(55), base.AddDate(0, 0, 1))

	rec := cuenta.NewReconciler(st, st.Parties(), testLogger())
	res, err := rec.RecomputeBalance(context.Background(), entity.PartyTypeClient, client.ID)
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(70)), "100 - 30 = 70, got %s", res.Balance)
	assert.True(t, res.Drifted)
	assert.Equal(t, 2, res.SnapshotsFixed)

	// Segunda pasada: mismo mayor, cero escrituras
	before := st.Writes()
	res, err = rec.RecomputeBalance(context.Background(), entity.PartyTypeClient, client.ID)
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(70)))
	assert.False(t, res.Drifted)
	assert.Equal(t, 0, res.SnapshotsFixed)
	assert.Equal(t, before, st.Writes(), "la segunda pasada no debe escribir nada")
}

func TestRecomputeBalance_ParteInexistente(t *testing.T) {
	st := memory.NewStore()
	rec := cuenta.NewReconciler(st, st.Parties(), testLogger())

	_, err := rec.RecomputeBalance(context.Background(), entity.PartyTypeClient, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecomputeBalance_TipoEquivocado(t *testing.T) {
	st := memory.NewStore()
	supplier := seedParty(t, st, entity.PartyTypeSupplier, "Finca La Esperanza", decimal.Zero)
	rec := cuenta.NewReconciler(st, st.Parties(), testLogger())

	_, err := rec.RecomputeBalance(context.Background(), entity.PartyTypeClient, supplier.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostInTx_Convencion(t *testing.T) {
	st := memory.NewStore()
	supplier := seedParty(t, st, entity.PartyTypeSupplier, "Finca La Esperanza", decimal.Zero)
	ctx := context.Background()

	// Ingreso de fruta: crédito al proveedor, el saldo queda negativo (le debemos)
	err := st.Run(ctx, func(tx repository.Tx) error {
		_, err := cuenta.PostInTx(tx, entity.PartyTypeSupplier, supplier.ID,
			entity.DocTypeGoodsIntake, uuid.New().String(), decimal.NewFromInt(100), "ingreso", time.Now())
		return err
	})
	require.NoError(t, err)

	got, err := st.Parties().GetByID(supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(-100)), "got %s", got.CurrentBalance)

	// Pago: débito, el saldo sube hacia cero
	err = st.Run(ctx, func(tx repository.Tx) error {
		_, err := cuenta.PostInTx(tx, entity.PartyTypeSupplier, supplier.ID,
			entity.DocTypePayment, uuid.New().String(), decimal.NewFromInt(40), "pago", time.Now())
		return err
	})
	require.NoError(t, err)

	got, err = st.Parties().GetByID(supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(-60)), "got %s", got.CurrentBalance)
}

func TestPostInTx_SinConvencion(t *testing.T) {
	st := memory.NewStore()
	client := seedParty(t, st, entity.PartyTypeClient, "Mercado Central", decimal.Zero)

	err := st.Run(context.Background(), func(tx repository.Tx) error {
		_, err := cuenta.PostInTx(tx, entity.PartyTypeClient, client.ID,
			entity.DocTypeGoodsIntake, uuid.New().String(), decimal.NewFromInt(100), "x", time.Now())
		return err
	})
	assert.Error(t, err, "un ingreso de fruta no asienta contra un cliente")
}

func TestRemoveDocEntriesInTx(t *testing.T) {
	st := memory.NewStore()
	client := seedParty(t, st, entity.PartyTypeClient, "Mercado Central", decimal.Zero)
	ctx := context.Background()
	docID := uuid.New().String()

	err := st.Run(ctx, func(tx repository.Tx) error {
		_, err := cuenta.PostInTx(tx, entity.PartyTypeClient, client.ID,
			entity.DocTypeGoodsOutflow, docID, decimal.NewFromInt(250), "salida", time.Now())
		return err
	})
	require.NoError(t, err)

	var touched []cuenta.PartyRef
	err = st.Run(ctx, func(tx repository.Tx) error {
		var err error
		touched, err = cuenta.RemoveDocEntriesInTx(tx, entity.DocTypeGoodsOutflow, docID)
		return err
	})
	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Equal(t, client.ID, touched[0].ID)

	got, err := st.Parties().GetByID(client.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero(), "el saldo vuelve a cero al borrar el asiento")

	entries, err := st.Bundle().Ledger.ListByParty(entity.PartyTypeClient, client.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
