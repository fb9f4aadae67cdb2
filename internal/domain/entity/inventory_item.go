package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de ítems de inventario de la granja.
const (
	ItemCategoryFeed      = "feed"      // alimento concentrado
	ItemCategoryMedicine  = "medicine"  // medicamentos y vacunas
	ItemCategorySupplies  = "supplies"  // insumos generales
	ItemCategoryEquipment = "equipment" // equipos y herramientas
	ItemCategoryOther     = "other"
)

// InventoryItem representa un ítem de inventario de la granja (alimento, medicina, insumos).
// Quantity es una proyección derivada del ledger de movimientos: solo la escribe el motor
// de movimientos, nunca directamente desde un handler.
type InventoryItem struct {
	ID           string
	UserID       string
	Name         string
	Category     string // feed, medicine, supplies, equipment, other
	Unit         string // kg, litros, unidades, dosis
	Quantity     decimal.Decimal
	MinimumStock *decimal.Decimal // umbral de stock bajo (opcional)
	UnitPrice    *decimal.Decimal
	Supplier     string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete: el ledger del ítem se preserva siempre
}

// IsDeleted indica si el ítem fue eliminado lógicamente.
func (i *InventoryItem) IsDeleted() bool {
	return i.DeletedAt != nil
}

// HasMinimumStock indica si el ítem tiene umbral de stock bajo configurado.
func (i *InventoryItem) HasMinimumStock() bool {
	return i.MinimumStock != nil
}
