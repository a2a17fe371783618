package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, party_type, party_id, direction, amount, doc_type, doc_id,
		balance_after, description, date, created_at`

// Create persiste un asiento del mayor.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, party_type, party_id, direction, amount, doc_type, doc_id,
			balance_after, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.PartyType, entry.PartyID, entry.Direction, entry.Amount,
		entry.DocType, entry.DocID, entry.BalanceAfter, entry.Description,
		entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByParty devuelve los asientos de la parte en orden cronológico.
func (r *LedgerRepo) ListByParty(partyType, partyID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE party_type = $1 AND party_id = $2
		ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, partyType, partyID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByPartyRange devuelve los asientos de la parte en un rango de fechas, en orden cronológico.
func (r *LedgerRepo) ListByPartyRange(partyType, partyID string, from, to time.Time) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE party_type = $1 AND party_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, partyType, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by range: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByDoc devuelve los asientos originados por un documento.
func (r *LedgerRepo) ListByDoc(docType, docID string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE doc_type = $1 AND doc_id = $2
		ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, docType, docID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by doc: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// UpdateBalanceAfter reescribe el snapshot de saldo de un asiento.
func (r *LedgerRepo) UpdateBalanceAfter(id string, balance decimal.Decimal) error {
	query := `UPDATE ledger_entries SET balance_after = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, balance)
	if err != nil {
		return fmt.Errorf("update balance_after: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un asiento (la anulación borra, no contra-asienta).
func (r *LedgerRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLedgerEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var entries []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.PartyType, &e.PartyID, &e.Direction, &e.Amount,
			&e.DocType, &e.DocID, &e.BalanceAfter, &e.Description,
			&e.Date, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
