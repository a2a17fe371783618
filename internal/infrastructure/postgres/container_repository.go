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

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo implementación de ContainerRepository (usable con pool o tx).
// Stock y deuda se guardan en tablas aparte con upsert por clave natural.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

// CreateType persiste un tipo de envase.
func (r *ContainerRepo) CreateType(ct *entity.ContainerType) error {
	query := `INSERT INTO container_types (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, ct.ID, ct.Name, ct.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert container type: %w", err)
	}
	return nil
}

// GetType obtiene un tipo de envase por ID.
func (r *ContainerRepo) GetType(id string) (*entity.ContainerType, error) {
	query := `SELECT id, name, created_at FROM container_types WHERE id = $1`
	var ct entity.ContainerType
	err := r.q.QueryRow(context.Background(), query, id).Scan(&ct.ID, &ct.Name, &ct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container type: %w", err)
	}
	return &ct, nil
}

// ListTypes devuelve todos los tipos de envase, ordenados por nombre.
func (r *ContainerRepo) ListTypes() ([]*entity.ContainerType, error) {
	query := `SELECT id, name, created_at FROM container_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list container types: %w", err)
	}
	defer rows.Close()

	var types []*entity.ContainerType
	for rows.Next() {
		var ct entity.ContainerType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan container type: %w", err)
		}
		types = append(types, &ct)
	}
	return types, rows.Err()
}

// GetStockForUpdate bloquea la fila de stock de un tipo de envase.
// Devuelve nil si el tipo aún no tiene fila de stock.
func (r *ContainerRepo) GetStockForUpdate(containerTypeID string) (*entity.ContainerStock, error) {
	query := `
		SELECT container_type_id, empty_units, full_units, updated_at
		FROM container_stock WHERE container_type_id = $1 FOR UPDATE`
	var s entity.ContainerStock
	err := r.q.QueryRow(context.Background(), query, containerTypeID).Scan(
		&s.ContainerTypeID, &s.EmptyUnits, &s.FullUnits, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock container stock: %w", err)
	}
	return &s, nil
}

// UpsertStock inserta o reescribe la fila de stock del tipo de envase.
func (r *ContainerRepo) UpsertStock(stock *entity.ContainerStock) error {
	query := `
		INSERT INTO container_stock (container_type_id, empty_units, full_units, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (container_type_id)
		DO UPDATE SET empty_units = $2, full_units = $3, updated_at = $4`
	_, err := r.q.Exec(context.Background(), query,
		stock.ContainerTypeID, stock.EmptyUnits, stock.FullUnits, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert container stock: %w", err)
	}
	return nil
}

// ListStock devuelve el stock propio de todos los tipos con fila registrada.
func (r *ContainerRepo) ListStock() ([]*entity.ContainerStock, error) {
	query := `
		SELECT container_type_id, empty_units, full_units, updated_at
		FROM container_stock ORDER BY container_type_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list container stock: %w", err)
	}
	defer rows.Close()

	var stocks []*entity.ContainerStock
	for rows.Next() {
		var s entity.ContainerStock
		if err := rows.Scan(&s.ContainerTypeID, &s.EmptyUnits, &s.FullUnits, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan container stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	return stocks, rows.Err()
}

// GetDebtForUpdate bloquea el contador de deuda de envases de una parte.
// Devuelve nil si la parte no tiene contador para ese tipo.
func (r *ContainerRepo) GetDebtForUpdate(partyID, containerTypeID string) (*entity.ContainerDebt, error) {
	query := `
		SELECT party_id, container_type_id, units, updated_at
		FROM container_debts WHERE party_id = $1 AND container_type_id = $2 FOR UPDATE`
	var d entity.ContainerDebt
	err := r.q.QueryRow(context.Background(), query, partyID, containerTypeID).Scan(
		&d.PartyID, &d.ContainerTypeID, &d.Units, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock container debt: %w", err)
	}
	return &d, nil
}

// UpsertDebt inserta o reescribe el contador de deuda de la parte.
func (r *ContainerRepo) UpsertDebt(debt *entity.ContainerDebt) error {
	query := `
		INSERT INTO container_debts (party_id, container_type_id, units, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (party_id, container_type_id)
		DO UPDATE SET units = $3, updated_at = $4`
	_, err := r.q.Exec(context.Background(), query,
		debt.PartyID, debt.ContainerTypeID, debt.Units, debt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert container debt: %w", err)
	}
	return nil
}

// ListDebtByParty devuelve los contadores de deuda de una parte.
func (r *ContainerRepo) ListDebtByParty(partyID string) ([]*entity.ContainerDebt, error) {
	query := `
		SELECT party_id, container_type_id, units, updated_at
		FROM container_debts WHERE party_id = $1 ORDER BY container_type_id`
	rows, err := r.q.Query(context.Background(), query, partyID)
	if err != nil {
		return nil, fmt.Errorf("list container debts: %w", err)
	}
	defer rows.Close()

	var debts []*entity.ContainerDebt
	for rows.Next() {
		var d entity.ContainerDebt
		if err := rows.Scan(&d.PartyID, &d.ContainerTypeID, &d.Units, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan container debt: %w", err)
		}
		debts = append(debts, &d)
	}
	return debts, rows.Err()
}
