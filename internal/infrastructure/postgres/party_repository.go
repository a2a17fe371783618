package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implementación de PartyRepository (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `id, type, name, tax_id, phone, current_balance, created_at, updated_at`

// Create persiste un cliente o proveedor.
func (r *PartyRepo) Create(party *entity.Party) error {
	query := `
		INSERT INTO parties (id, type, name, tax_id, phone, current_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Type, party.Name, party.TaxID, party.Phone,
		party.CurrentBalance, party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get party")
}

// GetForUpdate bloquea la fila de la parte para ajustar el saldo cacheado.
func (r *PartyRepo) GetForUpdate(id string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock party")
}

// List lista partes de un tipo con paginación, ordenadas por nombre.
func (r *PartyRepo) List(partyType string, limit, offset int) ([]*entity.Party, error) {
	query := `
		SELECT ` + partyColumns + ` FROM parties
		WHERE type = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, partyType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	return scanParties(rows)
}

// ListAll devuelve todas las partes sin paginar, ordenadas por nombre.
func (r *PartyRepo) ListAll() ([]*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all parties: %w", err)
	}
	defer rows.Close()
	return scanParties(rows)
}

// Update actualiza los datos de la parte (no toca el saldo).
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties SET name = $2, tax_id = $3, phone = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, party.TaxID, party.Phone, party.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBalance reescribe el saldo cacheado de la parte.
func (r *PartyRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	query := `UPDATE parties SET current_balance = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, balance)
	if err != nil {
		return fmt.Errorf("update party balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la parte.
func (r *PartyRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartyRepo) scanOne(row pgx.Row, op string) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(
		&p.ID, &p.Type, &p.Name, &p.TaxID, &p.Phone,
		&p.CurrentBalance, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanParties(rows pgx.Rows) ([]*entity.Party, error) {
	var parties []*entity.Party
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(
			&p.ID, &p.Type, &p.Name, &p.TaxID, &p.Phone,
			&p.CurrentBalance, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		parties = append(parties, &p)
	}
	return parties, rows.Err()
}
