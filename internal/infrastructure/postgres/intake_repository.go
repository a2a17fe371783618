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

var _ repository.GoodsIntakeRepository = (*IntakeRepo)(nil)

// IntakeRepo implementación de GoodsIntakeRepository. Las pesadas y los
// movimientos de envases viven en tablas hijas y se insertan y cargan con la
// cabecera (siempre dentro de la misma tx del caso de uso).
type IntakeRepo struct {
	q Querier
}

// NewIntakeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIntakeRepository(q Querier) *IntakeRepo {
	return &IntakeRepo{q: q}
}

// Create persiste el remito de entrada con sus pesadas y envases.
func (r *IntakeRepo) Create(intake *entity.GoodsIntake) error {
	ctx := context.Background()
	query := `
		INSERT INTO goods_intakes (id, supplier_id, number, date, total, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		intake.ID, intake.SupplierID, intake.Number, intake.Date, intake.Total,
		intake.Notes, intake.CreatedAt, intake.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert intake: %w", err)
	}

	for _, w := range intake.WeighIns {
		_, err := r.q.Exec(ctx, `
			INSERT INTO weigh_ins (id, intake_id, product_id, kg, price_per_kg, amount)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			w.ID, intake.ID, w.ProductID, w.Kg, w.PricePerKg, w.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert weigh-in: %w", err)
		}
	}
	for _, c := range intake.Containers {
		_, err := r.q.Exec(ctx, `
			INSERT INTO intake_containers (intake_id, container_type_id, full_delta, empty_delta, debt_delta)
			VALUES ($1, $2, $3, $4, $5)`,
			intake.ID, c.ContainerTypeID, c.FullDelta, c.EmptyDelta, c.DebtDelta,
		)
		if err != nil {
			return fmt.Errorf("insert intake container: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el remito con pesadas y envases anidados.
func (r *IntakeRepo) GetByID(id string) (*entity.GoodsIntake, error) {
	query := `
		SELECT id, supplier_id, number, date, total, notes, created_at, created_by
		FROM goods_intakes WHERE id = $1`
	var in entity.GoodsIntake
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&in.ID, &in.SupplierID, &in.Number, &in.Date, &in.Total,
		&in.Notes, &in.CreatedAt, &in.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intake: %w", err)
	}
	if err := r.loadChildren(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ListBySupplier lista remitos de un proveedor, más recientes primero.
func (r *IntakeRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.GoodsIntake, error) {
	query := `
		SELECT id, supplier_id, number, date, total, notes, created_at, created_by
		FROM goods_intakes WHERE supplier_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, supplierID, limit, offset)
}

// List lista todos los remitos, más recientes primero.
func (r *IntakeRepo) List(limit, offset int) ([]*entity.GoodsIntake, error) {
	query := `
		SELECT id, supplier_id, number, date, total, notes, created_at, created_by
		FROM goods_intakes
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Delete elimina el remito; las tablas hijas caen por ON DELETE CASCADE.
func (r *IntakeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM goods_intakes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete intake: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountBySupplier cuenta los remitos de un proveedor.
func (r *IntakeRepo) CountBySupplier(supplierID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM goods_intakes WHERE supplier_id = $1`, supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count intakes: %w", err)
	}
	return count, nil
}

func (r *IntakeRepo) list(query string, args ...any) ([]*entity.GoodsIntake, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list intakes: %w", err)
	}
	defer rows.Close()

	var intakes []*entity.GoodsIntake
	for rows.Next() {
		var in entity.GoodsIntake
		if err := rows.Scan(
			&in.ID, &in.SupplierID, &in.Number, &in.Date, &in.Total,
			&in.Notes, &in.CreatedAt, &in.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan intake: %w", err)
		}
		intakes = append(intakes, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, in := range intakes {
		if err := r.loadChildren(in); err != nil {
			return nil, err
		}
	}
	return intakes, nil
}

func (r *IntakeRepo) loadChildren(in *entity.GoodsIntake) error {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, intake_id, product_id, kg, price_per_kg, amount
		FROM weigh_ins WHERE intake_id = $1 ORDER BY id`, in.ID)
	if err != nil {
		return fmt.Errorf("list weigh-ins: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w entity.WeighIn
		if err := rows.Scan(&w.ID, &w.IntakeID, &w.ProductID, &w.Kg, &w.PricePerKg, &w.Amount); err != nil {
			return fmt.Errorf("scan weigh-in: %w", err)
		}
		in.WeighIns = append(in.WeighIns, w)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := r.q.Query(ctx, `
		SELECT container_type_id, full_delta, empty_delta, debt_delta
		FROM intake_containers WHERE intake_id = $1 ORDER BY container_type_id`, in.ID)
	if err != nil {
		return fmt.Errorf("list intake containers: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var c entity.ContainerMove
		if err := crows.Scan(&c.ContainerTypeID, &c.FullDelta, &c.EmptyDelta, &c.DebtDelta); err != nil {
			return fmt.Errorf("scan intake container: %w", err)
		}
		in.Containers = append(in.Containers, c)
	}
	return crows.Err()
}
