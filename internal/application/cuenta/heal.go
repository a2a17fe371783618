package cuenta

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// HealFailure falla aislada de una parte durante el saneo masivo.
type HealFailure struct {
	PartyID string
	Err     error
}

// HealReport resumen de un saneo masivo de saldos.
type HealReport struct {
	Parties   int // partes procesadas
	Corrected int // partes cuyo saldo cacheado estaba desviado
	Failures  []HealFailure
}

// HealAll recalcula el saldo de todas las cuentas corrientes con concurrencia
// acotada (workers simultáneos) para no saturar la base. La falla de una parte
// se registra y no aborta el saneo de las demás.
func (s *Reconciler) HealAll(ctx context.Context, workers int) (HealReport, error) {
	if workers <= 0 {
		workers = 3
	}

	parties, err := s.partyRepo.ListAll()
	if err != nil {
		return HealReport{}, err
	}

	var mu sync.Mutex
	report := HealReport{Parties: len(parties)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range parties {
		party := p
		g.Go(func() error {
			res, err := s.RecomputeBalance(ctx, party.Type, party.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn().Err(err).Str("party_id", party.ID).Msg("saneo de saldo falló; se continúa con el resto")
				report.Failures = append(report.Failures, HealFailure{PartyID: party.ID, Err: err})
				return nil // aislar la falla: nunca abortar el grupo
			}
			if res.Drifted {
				s.log.Info().
					Str("party_id", party.ID).
					Str("balance", res.Balance.String()).
					Int("snapshots", res.SnapshotsFixed).
					Msg("saldo cacheado corregido")
				report.Corrected++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
