package cuenta_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
	"github.com/frutasur/empaque-api/internal/infrastructure/memory"
)

// gaugeRunner envuelve al almacén midiendo cuántas transacciones hay en vuelo
// a la vez. Sirve para verificar la cota de concurrencia del saneo masivo.
type gaugeRunner struct {
	st *memory.Store

	mu       sync.Mutex
	inFlight int
	maxSeen  int
	calls    int
	failCall int // si > 0, esa llamada (1-based) devuelve error
}

var errInjected = errors.New("falla inyectada")

func (g *gaugeRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.inFlight++
	if g.inFlight > g.maxSeen {
		g.maxSeen = g.inFlight
	}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}()

	// Mantener la tx "abierta" un instante para que las demás se encimen
	time.Sleep(2 * time.Millisecond)
	if g.failCall > 0 && call == g.failCall {
		return errInjected
	}
	return g.st.Run(ctx, fn)
}

func TestHealAll_ConcurrenciaAcotada(t *testing.T) {
	st := memory.NewStore()
	for i := 0; i < 10; i++ {
		seedParty(t, st, entity.PartyTypeClient, fmt.Sprintf("Cliente %02d", i), decimal.NewFromInt(int64(i)))
	}

	runner := &gaugeRunner{st: st}
	rec := cuenta.NewReconciler(runner, st.Parties(), testLogger())

	report, err := rec.HealAll(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 10, report.Parties)
	assert.Empty(t, report.Failures)
	// Todos los saldos estaban desviados salvo el cliente 00 (saldo 0)
	assert.Equal(t, 9, report.Corrected)

	runner.mu.Lock()
	maxSeen := runner.maxSeen
	runner.mu.Unlock()
	assert.LessOrEqual(t, maxSeen, 3, "nunca más de 3 transacciones en vuelo")
	assert.Greater(t, maxSeen, 1, "el saneo debe correr en paralelo")
}

func TestHealAll_AislaFallas(t *testing.T) {
	st := memory.NewStore()
	a := seedParty(t, st, entity.PartyTypeClient, "Cliente A", decimal.NewFromInt(10))
	b := seedParty(t, st, entity.PartyTypeClient, "Cliente B", decimal.NewFromInt(20))
	c := seedParty(t, st, entity.PartyTypeClient, "Cliente C", decimal.NewFromInt(30))

	// Con un solo worker el orden es determinístico (alfabético); falla la segunda
	runner := &gaugeRunner{st: st, failCall: 2}
	rec := cuenta.NewReconciler(runner, st.Parties(), testLogger())

	report, err := rec.HealAll(context.Background(), 1)
	require.NoError(t, err, "una falla aislada no aborta el saneo")
	assert.Equal(t, 3, report.Parties)
	assert.Equal(t, 2, report.Corrected)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, b.ID, report.Failures[0].PartyID)
	assert.ErrorIs(t, report.Failures[0].Err, errInjected)

	// Las otras dos quedaron saneadas; la fallada conserva su saldo
	for _, tc := range []struct {
		party *entity.Party
		want  decimal.Decimal
	}{
		{a, decimal.Zero},
		{b, decimal.NewFromInt(20)},
		{c, decimal.Zero},
	} {
		got, err := st.Parties().GetByID(tc.party.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentBalance.Equal(tc.want), "%s: got %s", tc.party.Name, got.CurrentBalance)
	}
}

func TestHealAll_WorkersPorDefecto(t *testing.T) {
	st := memory.NewStore()
	seedParty(t, st, entity.PartyTypeClient, "Cliente A", decimal.Zero)
	rec := cuenta.NewReconciler(st, st.Parties(), testLogger())

	report, err := rec.HealAll(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Parties)
	assert.Equal(t, 0, report.Corrected)
}
