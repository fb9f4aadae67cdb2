package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avicola-api/internal/application/dto"
	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

// Categorías válidas de ítem.
var validCategories = map[string]bool{
	entity.ItemCategoryFeed:      true,
	entity.ItemCategoryMedicine:  true,
	entity.ItemCategorySupplies:  true,
	entity.ItemCategoryEquipment: true,
	entity.ItemCategoryOther:     true,
}

// ItemUseCase CRUD de ítems de inventario. Nunca escribe Quantity después de la creación:
// la proyección pertenece al motor de movimientos.
type ItemUseCase struct {
	itemRepo repository.InventoryItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.InventoryItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create crea un ítem con su cantidad inicial (la base de la cadena de movimientos).
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if userID == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validCategories[in.Category] {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock != nil && in.MinimumStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		MinimumStock: in.MinimumStock,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID obtiene un ítem del usuario. Cross-user o eliminado → ErrNotFound.
func (uc *ItemUseCase) GetByID(ctx context.Context, userID, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID || item.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista los ítems activos del usuario.
func (uc *ItemUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.itemRepo.ListByUser(ctx, userID, limit, offset)
}

// Update actualiza los datos del ítem. No toca Quantity (solo movimientos).
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Unit == "" || !validCategories[in.Category] {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock != nil && in.MinimumStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	item.Name = in.Name
	item.Category = in.Category
	item.Unit = in.Unit
	item.MinimumStock = in.MinimumStock
	item.UnitPrice = in.UnitPrice
	item.Supplier = in.Supplier
	item.Notes = in.Notes
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete elimina lógicamente el ítem. El ledger de movimientos se preserva siempre
// (registro de auditoría); un ítem eliminado rechaza movimientos nuevos con ErrNotFound.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	item, err := uc.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.itemRepo.SoftDelete(ctx, item.ID, time.Now())
}
