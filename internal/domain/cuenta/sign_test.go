package cuenta_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// TestDirectionFor_Convencion verifica la convención completa en un solo lugar:
// positivo = la parte nos debe.
func TestDirectionFor_Convencion(t *testing.T) {
	cases := []struct {
		docType   string
		partyType string
		want      string
	}{
		{entity.DocTypeGoodsOutflow, entity.PartyTypeClient, entity.DirectionDebit},
		{entity.DocTypeCollection, entity.PartyTypeClient, entity.DirectionCredit},
		{entity.DocTypeGoodsIntake, entity.PartyTypeSupplier, entity.DirectionCredit},
		{entity.DocTypePayment, entity.PartyTypeSupplier, entity.DirectionDebit},
		{entity.DocTypeRetention, entity.PartyTypeSupplier, entity.DirectionDebit},
	}
	for _, c := range cases {
		got, err := cuenta.DirectionFor(c.docType, c.partyType)
		require.NoError(t, err, "%s/%s debe tener convención", c.docType, c.partyType)
		assert.Equal(t, c.want, got, "%s/%s", c.docType, c.partyType)
	}
}

// TestDirectionFor_CombinacionInvalida: un ingreso de fruta no puede debitar a un cliente.
func TestDirectionFor_CombinacionInvalida(t *testing.T) {
	_, err := cuenta.DirectionFor(entity.DocTypeGoodsIntake, entity.PartyTypeClient)
	assert.ErrorIs(t, err, cuenta.ErrNoConvention)

	_, err = cuenta.DirectionFor("otro_tipo", entity.PartyTypeClient)
	assert.ErrorIs(t, err, cuenta.ErrNoConvention)
}

func TestSignedAmount(t *testing.T) {
	debit := &entity.LedgerEntry{Direction: entity.DirectionDebit, Amount: decimal.NewFromFloat(150.25)}
	credit := &entity.LedgerEntry{Direction: entity.DirectionCredit, Amount: decimal.NewFromFloat(150.25)}

	assert.True(t, cuenta.SignedAmount(debit).Equal(decimal.NewFromFloat(150.25)))
	assert.True(t, cuenta.SignedAmount(credit).Equal(decimal.NewFromFloat(-150.25)))
}

func TestRound2(t *testing.T) {
	assert.True(t, cuenta.Round2(decimal.NewFromFloat(10.005)).Equal(decimal.NewFromFloat(10.01)))
	assert.True(t, cuenta.Round2(decimal.NewFromFloat(10.004)).Equal(decimal.NewFromFloat(10.0)))
}
