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

var (
	_ repository.CollectionRepository = (*CollectionRepo)(nil)
	_ repository.PaymentRepository    = (*PaymentRepo)(nil)
)

// CollectionRepo implementación de CollectionRepository. Los instrumentos de
// cobranzas y pagos comparten la tabla instruments, discriminada por doc_type.
type CollectionRepo struct {
	q Querier
}

// NewCollectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

// Create persiste la cobranza con sus instrumentos.
func (r *CollectionRepo) Create(collection *entity.Collection) error {
	query := `
		INSERT INTO collections (id, client_id, outflow_id, method, total, date, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		collection.ID, collection.ClientID, collection.OutflowID, collection.Method,
		collection.Total, collection.Date, collection.Notes,
		collection.CreatedAt, collection.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return insertInstruments(r.q, entity.DocTypeCollection, collection.ID, collection.Instruments)
}

// GetByID obtiene la cobranza con instrumentos anidados.
func (r *CollectionRepo) GetByID(id string) (*entity.Collection, error) {
	query := `
		SELECT id, client_id, outflow_id, method, total, date, notes, created_at, created_by
		FROM collections WHERE id = $1`
	var c entity.Collection
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ClientID, &c.OutflowID, &c.Method, &c.Total,
		&c.Date, &c.Notes, &c.CreatedAt, &c.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	c.Instruments, err = listInstruments(r.q, entity.DocTypeCollection, c.ID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByClient lista cobranzas de un cliente, más recientes primero.
func (r *CollectionRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Collection, error) {
	query := `
		SELECT id, client_id, outflow_id, method, total, date, notes, created_at, created_by
		FROM collections WHERE client_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, clientID, limit, offset)
}

// List lista todas las cobranzas, más recientes primero.
func (r *CollectionRepo) List(limit, offset int) ([]*entity.Collection, error) {
	query := `
		SELECT id, client_id, outflow_id, method, total, date, notes, created_at, created_by
		FROM collections
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Delete elimina la cobranza y sus instrumentos.
func (r *CollectionRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM instruments WHERE doc_type = $1 AND doc_id = $2`,
		entity.DocTypeCollection, id,
	); err != nil {
		return fmt.Errorf("delete collection instruments: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByClient cuenta las cobranzas de un cliente.
func (r *CollectionRepo) CountByClient(clientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM collections WHERE client_id = $1`, clientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count collections: %w", err)
	}
	return count, nil
}

func (r *CollectionRepo) list(query string, args ...any) ([]*entity.Collection, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []*entity.Collection
	for rows.Next() {
		var c entity.Collection
		if err := rows.Scan(
			&c.ID, &c.ClientID, &c.OutflowID, &c.Method, &c.Total,
			&c.Date, &c.Notes, &c.CreatedAt, &c.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range collections {
		c.Instruments, err = listInstruments(r.q, entity.DocTypeCollection, c.ID)
		if err != nil {
			return nil, err
		}
	}
	return collections, nil
}

// PaymentRepo implementación de PaymentRepository, mismo esquema que cobranzas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el pago con sus instrumentos.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, supplier_id, method, total, retention, date, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.SupplierID, payment.Method, payment.Total, payment.Retention,
		payment.Date, payment.Notes, payment.CreatedAt, payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return insertInstruments(r.q, entity.DocTypePayment, payment.ID, payment.Instruments)
}

// GetByID obtiene el pago con instrumentos anidados.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `
		SELECT id, supplier_id, method, total, retention, date, notes, created_at, created_by
		FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SupplierID, &p.Method, &p.Total, &p.Retention,
		&p.Date, &p.Notes, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Instruments, err = listInstruments(r.q, entity.DocTypePayment, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListBySupplier lista pagos a un proveedor, más recientes primero.
func (r *PaymentRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, supplier_id, method, total, retention, date, notes, created_at, created_by
		FROM payments WHERE supplier_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, supplierID, limit, offset)
}

// List lista todos los pagos, más recientes primero.
func (r *PaymentRepo) List(limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, supplier_id, method, total, retention, date, notes, created_at, created_by
		FROM payments
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Delete elimina el pago y sus instrumentos.
func (r *PaymentRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM instruments WHERE doc_type = $1 AND doc_id = $2`,
		entity.DocTypePayment, id,
	); err != nil {
		return fmt.Errorf("delete payment instruments: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountBySupplier cuenta los pagos a un proveedor.
func (r *PaymentRepo) CountBySupplier(supplierID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM payments WHERE supplier_id = $1`, supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.Method, &p.Total, &p.Retention,
			&p.Date, &p.Notes, &p.CreatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range payments {
		p.Instruments, err = listInstruments(r.q, entity.DocTypePayment, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return payments, nil
}

func insertInstruments(q Querier, docType, docID string, instruments []entity.Instrument) error {
	for _, i := range instruments {
		_, err := q.Exec(context.Background(), `
			INSERT INTO instruments (id, doc_type, doc_id, kind, treasury_account_id, check_id, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			i.ID, docType, docID, i.Kind, i.TreasuryAccountID, i.CheckID, i.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert instrument: %w", err)
		}
	}
	return nil
}

func listInstruments(q Querier, docType, docID string) ([]entity.Instrument, error) {
	rows, err := q.Query(context.Background(), `
		SELECT id, doc_type, doc_id, kind, treasury_account_id, check_id, amount
		FROM instruments WHERE doc_type = $1 AND doc_id = $2 ORDER BY id`, docType, docID)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	defer rows.Close()

	var instruments []entity.Instrument
	for rows.Next() {
		var i entity.Instrument
		if err := rows.Scan(
			&i.ID, &i.DocType, &i.DocID, &i.Kind,
			&i.TreasuryAccountID, &i.CheckID, &i.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		instruments = append(instruments, i)
	}
	return instruments, rows.Err()
}
