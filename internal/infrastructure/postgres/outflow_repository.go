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

var _ repository.SalesOutflowRepository = (*OutflowRepo)(nil)

// OutflowRepo implementación de SalesOutflowRepository. Líneas y movimientos
// de envases en tablas hijas, cargadas con la cabecera.
type OutflowRepo struct {
	q Querier
}

// NewOutflowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutflowRepository(q Querier) *OutflowRepo {
	return &OutflowRepo{q: q}
}

const outflowColumns = `id, client_id, number, date, debt_total, amount_collected,
		payment_status, notes, created_at, created_by`

// Create persiste la salida con sus líneas y envases.
func (r *OutflowRepo) Create(outflow *entity.SalesOutflow) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales_outflows (id, client_id, number, date, debt_total, amount_collected,
			payment_status, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		outflow.ID, outflow.ClientID, outflow.Number, outflow.Date, outflow.DebtTotal,
		outflow.AmountCollected, outflow.PaymentStatus, outflow.Notes,
		outflow.CreatedAt, outflow.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outflow: %w", err)
	}

	for _, l := range outflow.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO outflow_lines (id, outflow_id, product_id, kg, unit_price, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, outflow.ID, l.ProductID, l.Kg, l.UnitPrice, l.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert outflow line: %w", err)
		}
	}
	for _, c := range outflow.Containers {
		_, err := r.q.Exec(ctx, `
			INSERT INTO outflow_containers (outflow_id, container_type_id, full_delta, empty_delta, debt_delta)
			VALUES ($1, $2, $3, $4, $5)`,
			outflow.ID, c.ContainerTypeID, c.FullDelta, c.EmptyDelta, c.DebtDelta,
		)
		if err != nil {
			return fmt.Errorf("insert outflow container: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la salida con líneas y envases anidados.
func (r *OutflowRepo) GetByID(id string) (*entity.SalesOutflow, error) {
	query := `SELECT ` + outflowColumns + ` FROM sales_outflows WHERE id = $1`
	return r.getOne(query, id, "get outflow")
}

// GetForUpdate bloquea la cabecera para actualizar monto cobrado y estado.
func (r *OutflowRepo) GetForUpdate(id string) (*entity.SalesOutflow, error) {
	query := `SELECT ` + outflowColumns + ` FROM sales_outflows WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id, "lock outflow")
}

// ListByClient lista salidas de un cliente, más recientes primero.
func (r *OutflowRepo) ListByClient(clientID string, limit, offset int) ([]*entity.SalesOutflow, error) {
	query := `
		SELECT ` + outflowColumns + ` FROM sales_outflows WHERE client_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, clientID, limit, offset)
}

// List lista todas las salidas, más recientes primero.
func (r *OutflowRepo) List(limit, offset int) ([]*entity.SalesOutflow, error) {
	query := `
		SELECT ` + outflowColumns + ` FROM sales_outflows
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// UpdateCollected reescribe monto cobrado y estado de cobro.
func (r *OutflowRepo) UpdateCollected(id string, amountCollected decimal.Decimal, status string) error {
	query := `UPDATE sales_outflows SET amount_collected = $2, payment_status = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, amountCollected, status)
	if err != nil {
		return fmt.Errorf("update outflow collected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la salida; las tablas hijas caen por ON DELETE CASCADE.
func (r *OutflowRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sales_outflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete outflow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByClient cuenta las salidas de un cliente.
func (r *OutflowRepo) CountByClient(clientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_outflows WHERE client_id = $1`, clientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count outflows: %w", err)
	}
	return count, nil
}

func (r *OutflowRepo) getOne(query, id, op string) (*entity.SalesOutflow, error) {
	var o entity.SalesOutflow
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ClientID, &o.Number, &o.Date, &o.DebtTotal, &o.AmountCollected,
		&o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadChildren(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OutflowRepo) list(query string, args ...any) ([]*entity.SalesOutflow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outflows: %w", err)
	}
	defer rows.Close()

	var outflows []*entity.SalesOutflow
	for rows.Next() {
		var o entity.SalesOutflow
		if err := rows.Scan(
			&o.ID, &o.ClientID, &o.Number, &o.Date, &o.DebtTotal, &o.AmountCollected,
			&o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan outflow: %w", err)
		}
		outflows = append(outflows, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range outflows {
		if err := r.loadChildren(o); err != nil {
			return nil, err
		}
	}
	return outflows, nil
}

func (r *OutflowRepo) loadChildren(o *entity.SalesOutflow) error {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, outflow_id, product_id, kg, unit_price, amount
		FROM outflow_lines WHERE outflow_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("list outflow lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OutflowLine
		if err := rows.Scan(&l.ID, &l.OutflowID, &l.ProductID, &l.Kg, &l.UnitPrice, &l.Amount); err != nil {
			return fmt.Errorf("scan outflow line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := r.q.Query(ctx, `
		SELECT container_type_id, full_delta, empty_delta, debt_delta
		FROM outflow_containers WHERE outflow_id = $1 ORDER BY container_type_id`, o.ID)
	if err != nil {
		return fmt.Errorf("list outflow containers: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var c entity.ContainerMove
		if err := crows.Scan(&c.ContainerTypeID, &c.FullDelta, &c.EmptyDelta, &c.DebtDelta); err != nil {
			return fmt.Errorf("scan outflow container: %w", err)
		}
		o.Containers = append(o.Containers, c)
	}
	return crows.Err()
}
