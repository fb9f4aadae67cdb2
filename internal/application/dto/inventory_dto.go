package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/inventory/items.
// Quantity es la cantidad inicial; después de crear, solo los movimientos la cambian.
type CreateItemRequest struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier     string           `json:"supplier,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// UpdateItemRequest body para PUT /api/inventory/items/:id.
// No incluye quantity: la proyección solo se escribe vía movimientos.
type UpdateItemRequest struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier     string           `json:"supplier,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// ItemResponse representación HTTP de un ítem de inventario.
type ItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinimumStock *decimal.Decimal `json:"minimum_stock,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier     string           `json:"supplier,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// FromItem convierte la entidad a su representación HTTP.
func FromItem(i *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Unit:         i.Unit,
		Quantity:     i.Quantity,
		MinimumStock: i.MinimumStock,
		UnitPrice:    i.UnitPrice,
		Supplier:     i.Supplier,
		Notes:        i.Notes,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity debe ser positiva para in/out; adjustment y transfer llevan el signo del caller.
type RegisterMovementRequest struct {
	ItemID   string           `json:"item_id"`
	Type     string           `json:"type"`
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   string           `json:"reason"`
	RefType  string           `json:"ref_type,omitempty"`
	RefID    string           `json:"ref_id,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier string           `json:"supplier,omitempty"`
	Notes    string           `json:"notes,omitempty"`
	Date     *time.Time       `json:"date,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del ledger.
type MovementResponse struct {
	ID               string           `json:"id"`
	ItemID           string           `json:"item_id"`
	Type             string           `json:"type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	PreviousQuantity decimal.Decimal  `json:"previous_quantity"`
	NewQuantity      decimal.Decimal  `json:"new_quantity"`
	Reason           string           `json:"reason"`
	RefType          string           `json:"ref_type,omitempty"`
	RefID            string           `json:"ref_id,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost        *decimal.Decimal `json:"total_cost,omitempty"`
	Supplier         string           `json:"supplier,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Date             time.Time        `json:"date"`
	CreatedAt        time.Time        `json:"created_at"`
}

// FromMovement convierte la entidad a su representación HTTP.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		ItemID:           m.ItemID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		RefType:          m.RefType,
		RefID:            m.RefID,
		UnitCost:         m.UnitCost,
		TotalCost:        m.TotalCost,
		Supplier:         m.Supplier,
		Notes:            m.Notes,
		Date:             m.Date,
		CreatedAt:        m.CreatedAt,
	}
}
