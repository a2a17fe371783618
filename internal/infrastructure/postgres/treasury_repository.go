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

var _ repository.TreasuryRepository = (*TreasuryRepo)(nil)

// TreasuryRepo implementación de TreasuryRepository: cajas/bancos y sus asientos.
type TreasuryRepo struct {
	q Querier
}

// NewTreasuryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreasuryRepository(q Querier) *TreasuryRepo {
	return &TreasuryRepo{q: q}
}

const treasuryAccountColumns = `id, kind, name, balance, created_at, updated_at`

// Create persiste una cuenta de tesorería.
func (r *TreasuryRepo) Create(account *entity.TreasuryAccount) error {
	query := `
		INSERT INTO treasury_accounts (id, kind, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Kind, account.Name, account.Balance,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert treasury account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *TreasuryRepo) GetByID(id string) (*entity.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts WHERE id = $1`
	return r.scanAccount(r.q.QueryRow(context.Background(), query, id), "get treasury account")
}

// GetForUpdate bloquea la fila de la cuenta para mover el saldo.
func (r *TreasuryRepo) GetForUpdate(id string) (*entity.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts WHERE id = $1 FOR UPDATE`
	return r.scanAccount(r.q.QueryRow(context.Background(), query, id), "lock treasury account")
}

// List devuelve todas las cuentas, ordenadas por nombre.
func (r *TreasuryRepo) List() ([]*entity.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list treasury accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entity.TreasuryAccount
	for rows.Next() {
		var a entity.TreasuryAccount
		if err := rows.Scan(
			&a.ID, &a.Kind, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan treasury account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

// UpdateBalance reescribe el saldo de la cuenta.
func (r *TreasuryRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	query := `UPDATE treasury_accounts SET balance = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, balance)
	if err != nil {
		return fmt.Errorf("update treasury balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cuenta.
func (r *TreasuryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM treasury_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treasury account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const treasuryEntryColumns = `id, account_id, kind, amount, concept, doc_type, doc_id,
		date, created_at, created_by`

// CreateEntry persiste un asiento de tesorería.
func (r *TreasuryRepo) CreateEntry(entry *entity.TreasuryEntry) error {
	query := `
		INSERT INTO treasury_entries (id, account_id, kind, amount, concept, doc_type, doc_id,
			date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.AccountID, entry.Kind, entry.Amount, entry.Concept,
		entry.DocType, entry.DocID, entry.Date, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert treasury entry: %w", err)
	}
	return nil
}

// ListEntries lista asientos de una cuenta, más recientes primero.
func (r *TreasuryRepo) ListEntries(accountID string, limit, offset int) ([]*entity.TreasuryEntry, error) {
	query := `
		SELECT ` + treasuryEntryColumns + ` FROM treasury_entries
		WHERE account_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list treasury entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.TreasuryEntry
	for rows.Next() {
		var e entity.TreasuryEntry
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.Kind, &e.Amount, &e.Concept,
			&e.DocType, &e.DocID, &e.Date, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan treasury entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// GetEntry obtiene un asiento por ID.
func (r *TreasuryRepo) GetEntry(id string) (*entity.TreasuryEntry, error) {
	query := `SELECT ` + treasuryEntryColumns + ` FROM treasury_entries WHERE id = $1`
	var e entity.TreasuryEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.AccountID, &e.Kind, &e.Amount, &e.Concept,
		&e.DocType, &e.DocID, &e.Date, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treasury entry: %w", err)
	}
	return &e, nil
}

// DeleteEntry elimina un asiento por ID.
func (r *TreasuryRepo) DeleteEntry(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM treasury_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treasury entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEntriesByDoc elimina los asientos enlazados a un documento (anulación).
func (r *TreasuryRepo) DeleteEntriesByDoc(docType, docID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM treasury_entries WHERE doc_type = $1 AND doc_id = $2`, docType, docID)
	if err != nil {
		return fmt.Errorf("delete treasury entries by doc: %w", err)
	}
	return nil
}

// CountEntries cuenta los asientos de una cuenta.
func (r *TreasuryRepo) CountEntries(accountID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM treasury_entries WHERE account_id = $1`, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count treasury entries: %w", err)
	}
	return count, nil
}

func (r *TreasuryRepo) scanAccount(row pgx.Row, op string) (*entity.TreasuryAccount, error) {
	var a entity.TreasuryAccount
	err := row.Scan(&a.ID, &a.Kind, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
