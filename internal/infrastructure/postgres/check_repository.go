package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var _ repository.CheckRepository = (*CheckRepo)(nil)

// CheckRepo implementación de CheckRepository.
type CheckRepo struct {
	q Querier
}

// NewCheckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCheckRepository(q Querier) *CheckRepo {
	return &CheckRepo{q: q}
}

const checkColumns = `id, number, bank_name, amount, issue_date, due_date, status,
		party_id, collection_id, payment_id, deposit_bank, created_at, updated_at`

// Create persiste un cheque.
func (r *CheckRepo) Create(check *entity.Check) error {
	query := `
		INSERT INTO checks (id, number, bank_name, amount, issue_date, due_date, status,
			party_id, collection_id, payment_id, deposit_bank, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.Number, check.BankName, check.Amount, check.IssueDate,
		check.DueDate, check.Status, check.PartyID, check.CollectionID,
		check.PaymentID, check.DepositBank, check.CreatedAt, check.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

// GetByID obtiene un cheque por ID.
func (r *CheckRepo) GetByID(id string) (*entity.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get check")
}

// GetForUpdate bloquea la fila del cheque para una transición de estado.
func (r *CheckRepo) GetForUpdate(id string) (*entity.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock check")
}

// ListByStatus lista cheques en un estado, ordenados por vencimiento.
func (r *CheckRepo) ListByStatus(status string, limit, offset int) ([]*entity.Check, error) {
	query := `
		SELECT ` + checkColumns + ` FROM checks WHERE status = $1
		ORDER BY due_date, created_at LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// List lista todos los cheques, más recientes primero.
func (r *CheckRepo) List(limit, offset int) ([]*entity.Check, error) {
	query := `
		SELECT ` + checkColumns + ` FROM checks
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Update reescribe estado y referencias del cheque.
func (r *CheckRepo) Update(check *entity.Check) error {
	query := `
		UPDATE checks SET status = $2, payment_id = $3, deposit_bank = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		check.ID, check.Status, check.PaymentID, check.DepositBank, check.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cheque.
func (r *CheckRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM checks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete check: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByParty cuenta los cheques librados por una parte.
func (r *CheckRepo) CountByParty(partyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM checks WHERE party_id = $1`, partyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count checks: %w", err)
	}
	return count, nil
}

func (r *CheckRepo) scanOne(row pgx.Row, op string) (*entity.Check, error) {
	var c entity.Check
	err := row.Scan(
		&c.ID, &c.Number, &c.BankName, &c.Amount, &c.IssueDate,
		&c.DueDate, &c.Status, &c.PartyID, &c.CollectionID,
		&c.PaymentID, &c.DepositBank, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *CheckRepo) list(query string, args ...any) ([]*entity.Check, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	var checks []*entity.Check
	for rows.Next() {
		var c entity.Check
		if err := rows.Scan(
			&c.ID, &c.Number, &c.BankName, &c.Amount, &c.IssueDate,
			&c.DueDate, &c.Status, &c.PartyID, &c.CollectionID,
			&c.PaymentID, &c.DepositBank, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		checks = append(checks, &c)
	}
	return checks, rows.Err()
}
