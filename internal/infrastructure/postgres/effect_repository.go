package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var _ repository.EffectRepository = (*EffectRepo)(nil)

// EffectRepo implementación de EffectRepository: el registro de efectos por documento.
type EffectRepo struct {
	q Querier
}

// NewEffectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEffectRepository(q Querier) *EffectRepo {
	return &EffectRepo{q: q}
}

// CreateBatch persiste la lista de efectos de un documento en orden.
func (r *EffectRepo) CreateBatch(effects []*entity.DocumentEffect) error {
	ctx := context.Background()
	query := `
		INSERT INTO document_effects (id, doc_type, doc_id, seq, type, target_id, aux_id,
			delta, prev_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, e := range effects {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, query,
			e.ID, e.DocType, e.DocID, e.Seq, e.Type, e.TargetID, e.AuxID,
			e.Delta, e.PrevValue, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert document effect: %w", err)
		}
	}
	return nil
}

// ListByDoc devuelve los efectos de un documento ordenados por secuencia.
func (r *EffectRepo) ListByDoc(docType, docID string) ([]*entity.DocumentEffect, error) {
	query := `
		SELECT id, doc_type, doc_id, seq, type, target_id, aux_id, delta, prev_value, created_at
		FROM document_effects WHERE doc_type = $1 AND doc_id = $2 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, docType, docID)
	if err != nil {
		return nil, fmt.Errorf("list document effects: %w", err)
	}
	defer rows.Close()

	var effects []*entity.DocumentEffect
	for rows.Next() {
		var e entity.DocumentEffect
		if err := rows.Scan(
			&e.ID, &e.DocType, &e.DocID, &e.Seq, &e.Type, &e.TargetID, &e.AuxID,
			&e.Delta, &e.PrevValue, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document effect: %w", err)
		}
		effects = append(effects, &e)
	}
	return effects, rows.Err()
}

// DeleteByDoc elimina el registro de efectos de un documento (fin de la anulación).
func (r *EffectRepo) DeleteByDoc(docType, docID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM document_effects WHERE doc_type = $1 AND doc_id = $2`, docType, docID)
	if err != nil {
		return fmt.Errorf("delete document effects: %w", err)
	}
	return nil
}
