package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, user_id, name, category, unit, quantity, minimum_stock, unit_price, supplier, notes, created_at, updated_at, deleted_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un nuevo ítem con su cantidad inicial.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, user_id, name, category, unit, quantity, minimum_stock, unit_price, supplier, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.Name, item.Category, item.Unit,
		item.Quantity, item.MinimumStock, item.UnitPrice, item.Supplier, item.Notes,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID (incluye eliminados; el scoping lo decide el caso de uso).
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el ítem bloqueando su fila (SELECT FOR UPDATE).
// Es el punto de serialización por ítem: dos movimientos concurrentes del mismo ítem
// se encolan aquí y cada uno ve la cantidad recién comprometida por el anterior.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// Update actualiza los datos del ítem. No toca quantity: eso es UpdateQuantity,
// y solo desde la transacción del motor de movimientos.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, unit = $4, minimum_stock = $5, unit_price = $6, supplier = $7, notes = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Unit,
		item.MinimumStock, item.UnitPrice, item.Supplier, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateQuantity escribe la proyección de cantidad (solo el motor de movimientos).
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// SoftDelete marca el ítem como eliminado. El ledger se preserva.
func (r *InventoryItemRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete inventory item: %w", err)
	}
	return nil
}

// ListByUser lista los ítems activos del usuario con paginación.
func (r *InventoryItemRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListBelowMinimum devuelve los ítems activos del usuario con umbral configurado
// y cantidad en o por debajo del umbral (la consulta del escáner de stock bajo).
func (r *InventoryItemRepo) ListBelowMinimum(ctx context.Context, userID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE user_id = $1
		  AND deleted_at IS NULL
		  AND minimum_stock IS NOT NULL
		  AND quantity <= minimum_stock
		ORDER BY (minimum_stock - quantity) DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list items below minimum: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InventoryItemRepo) scanOne(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.UserID, &i.Name, &i.Category, &i.Unit, &i.Quantity,
		&i.MinimumStock, &i.UnitPrice, &i.Supplier, &i.Notes,
		&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	return &i, nil
}

func (r *InventoryItemRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(
			&i.ID, &i.UserID, &i.Name, &i.Category, &i.Unit, &i.Quantity,
			&i.MinimumStock, &i.UnitPrice, &i.Supplier, &i.Notes,
			&i.CreatedAt, &i.UpdatedAt, &i.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
