package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// StatementRow un asiento del extracto con el saldo corrido a ese punto.
type StatementRow struct {
	Entry   *entity.LedgerEntry
	Balance decimal.Decimal
}

// Statement extracto de cuenta corriente de una parte para un rango de fechas.
type Statement struct {
	Party          *entity.Party
	From           time.Time
	To             time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Rows           []StatementRow
	GeneratedAt    time.Time
}

// StatementExporter vuelca un extracto a un formato descargable.
type StatementExporter interface {
	Export(st *Statement) ([]byte, error)
}

// StatementUseCase arma extractos de cuenta corriente. El saldo corrido se
// recalcula desde los asientos, no desde los snapshots, para que el extracto
// cierre aunque exista deriva pendiente de saneo.
type StatementUseCase struct {
	partyRepo  repository.PartyRepository
	ledgerRepo repository.LedgerRepository
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(partyRepo repository.PartyRepository, ledgerRepo repository.LedgerRepository) *StatementUseCase {
	return &StatementUseCase{partyRepo: partyRepo, ledgerRepo: ledgerRepo}
}

// Build arma el extracto: saldo de apertura (suma firmada de lo anterior al
// rango), filas con saldo corrido y saldo de cierre.
func (uc *StatementUseCase) Build(ctx context.Context, partyType, partyID string, from, to time.Time) (*Statement, error) {
	party, err := uc.partyRepo.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if party == nil || party.Type != partyType {
		return nil, domain.ErrNotFound
	}
	if to.IsZero() {
		to = time.Now()
	}

	all, err := uc.ledgerRepo.ListByParty(partyType, partyID)
	if err != nil {
		return nil, err
	}

	st := &Statement{Party: party, From: from, To: to, GeneratedAt: time.Now()}
	running := decimal.Zero
	for _, e := range all {
		if e.Date.After(to) {
			break
		}
		running = domaincuenta.Round2(running.Add(domaincuenta.SignedAmount(e)))
		if e.Date.Before(from) {
			st.OpeningBalance = running
			continue
		}
		st.Rows = append(st.Rows, StatementRow{Entry: e, Balance: running})
	}
	st.ClosingBalance = running
	return st, nil
}
