package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, user_id, item_id, type, quantity, previous_quantity, new_quantity, reason, ref_type, ref_id, unit_cost, total_cost, supplier, notes, date, created_at, seq`

// StockMovementRepo implementación del puerto del ledger sobre PostgreSQL (pool o tx).
// La tabla solo recibe INSERT: sin UPDATE ni DELETE (auditoría). El orden de la cadena
// lo da la columna seq (bigserial), nunca date.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y recupera su secuencia de inserción.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, user_id, item_id, type, quantity, previous_quantity, new_quantity, reason, ref_type, ref_id, unit_cost, total_cost, supplier, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.UserID, m.ItemID, m.Type, m.Quantity, m.PreviousQuantity, m.NewQuantity,
		m.Reason, nullable(m.RefType), nullable(m.RefID), m.UnitCost, m.TotalCost,
		m.Supplier, m.Notes, m.Date, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// LastByItem devuelve el último movimiento comprometido del ítem (por seq, no por date).
func (r *StockMovementRepo) LastByItem(ctx context.Context, itemID string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE item_id = $1 ORDER BY seq DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, itemID))
}

// ListByUser lista movimientos del usuario con filtros, orden de inserción descendente.
func (r *StockMovementRepo) ListByUser(ctx context.Context, userID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE user_id = $1`
	args := []any{userID}
	pos := 2
	if f.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, f.ItemID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *StockMovementRepo) scanOne(row pgx.Row) (*entity.StockMovement, error) {
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refType, refID *string
	err := row.Scan(
		&m.ID, &m.UserID, &m.ItemID, &m.Type, &m.Quantity,
		&m.PreviousQuantity, &m.NewQuantity, &m.Reason,
		&refType, &refID, &m.UnitCost, &m.TotalCost,
		&m.Supplier, &m.Notes, &m.Date, &m.CreatedAt, &m.Seq,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	if refType != nil {
		m.RefType = *refType
	}
	if refID != nil {
		m.RefID = *refID
	}
	return &m, nil
}

// nullable convierte "" en NULL para columnas de referencia opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
