package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Avicola-api/internal/application/inventory"
	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: store compartido + repos + runner transaccional.
// El runner serializa las transacciones con un mutex (emula el SELECT FOR UPDATE)
// y restaura un snapshot cuando el callback falla (emula el ROLLBACK).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	items      map[string]*entity.InventoryItem
	movements  []*entity.StockMovement
	nextSeq    int64
	failInsert bool // fuerza el fallo del INSERT del movimiento
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*entity.InventoryItem{}, nextSeq: 1}
}

func (s *memStore) snapshot() (map[string]*entity.InventoryItem, []*entity.StockMovement, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make(map[string]*entity.InventoryItem, len(s.items))
	for k, v := range s.items {
		cp := *v
		items[k] = &cp
	}
	movs := make([]*entity.StockMovement, len(s.movements))
	copy(movs, s.movements)
	return items, movs, s.nextSeq
}

func (s *memStore) restore(items map[string]*entity.InventoryItem, movs []*entity.StockMovement, seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.movements = movs
	s.nextSeq = seq
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	return nil
}

func (r *memItemRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if it, ok := r.store.items[id]; ok {
		it.DeletedAt = &at
	}
	return nil
}

func (r *memItemRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.UserID == userID && !it.IsDeleted() {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListBelowMinimum(_ context.Context, userID string) ([]*entity.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.UserID == userID && !it.IsDeleted() && it.HasMinimumStock() && it.Quantity.LessThanOrEqual(*it.MinimumStock) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failInsert {
		return errors.New("insert falló")
	}
	cp := *m
	cp.Seq = r.store.nextSeq
	r.store.nextSeq++
	m.Seq = cp.Seq
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) LastByItem(_ context.Context, itemID string) (*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var last *entity.StockMovement
	for _, m := range r.store.movements {
		if m.ItemID == itemID && (last == nil || m.Seq > last.Seq) {
			last = m
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

func (r *memMovementRepo) ListByUser(_ context.Context, userID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.UserID != userID {
			continue
		}
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type memTxRunner struct {
	store *memStore
	txMu  sync.Mutex
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(repository.InventoryItemRepository, repository.StockMovementRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	items, movs, seq := r.store.snapshot()
	err := fn(&memItemRepo{store: r.store}, &memMovementRepo{store: r.store})
	if err != nil {
		r.store.restore(items, movs, seq)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID = "user-1"
	otherID = "user-2"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedItem(store *memStore, id, userID, quantity string) {
	q := dec(quantity)
	store.items[id] = &entity.InventoryItem{
		ID:       id,
		UserID:   userID,
		Name:     "Alimento concentrado",
		Category: entity.ItemCategoryFeed,
		Unit:     "kg",
		Quantity: q,
	}
}

func newMovementUC(store *memStore) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(
		&memTxRunner{store: store},
		&memMovementRepo{store: store},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EncadenaPreviousANew(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("35"), Reason: entity.MovementReasonSale,
	})
	require.NoError(t, err)
	assert.True(t, mov.PreviousQuantity.Equal(dec("50")))
	assert.True(t, mov.NewQuantity.Equal(dec("15")))
	assert.True(t, store.items["item-1"].Quantity.Equal(dec("15")),
		"la proyección debe igualar NewQuantity del último movimiento")

	mov, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeIN, Quantity: dec("10"), Reason: entity.MovementReasonPurchase,
	})
	require.NoError(t, err)
	assert.True(t, mov.PreviousQuantity.Equal(dec("15")))
	assert.True(t, mov.NewQuantity.Equal(dec("25")))
}

func TestRegisterMovement_StockInsuficienteSinRastro(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("35"), Reason: entity.MovementReasonSale,
	})
	require.NoError(t, err)

	// Intentar sacar 1000 teniendo 15: se rechaza sin dejar movimiento ni tocar la proyección.
	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("1000"), Reason: entity.MovementReasonSale,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.items["item-1"].Quantity.Equal(dec("15")))
	assert.Len(t, store.movements, 1, "el intento rechazado no debe registrar movimiento")
}

func TestRegisterMovement_SalidaExactaHastaCero(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "15")
	uc := newMovementUC(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("15"), Reason: entity.MovementReasonUsage,
	})
	require.NoError(t, err)
	assert.True(t, mov.NewQuantity.IsZero(), "llegar exactamente a cero es válido")
}

func TestRegisterMovement_ValidacionRechazada(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	casos := []inventory.MovementInput{
		{UserID: ownerID, ItemID: "item-1", Type: "merge", Quantity: dec("5"), Reason: entity.MovementReasonSale},
		{UserID: ownerID, ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("5"), Reason: entity.MovementReasonSale},
		{UserID: ownerID, ItemID: "item-1", Type: entity.MovementTypeOUT, Quantity: dec("-5"), Reason: entity.MovementReasonSale},
		{UserID: ownerID, ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("0"), Reason: entity.MovementReasonCorrection},
		{UserID: "", ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("5"), Reason: entity.MovementReasonPurchase},
	}
	for _, in := range casos {
		_, err := uc.RegisterMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %+v", in)
	}
	assert.Empty(t, store.movements, "ningún rechazo de validación debe llegar al ledger")
}

func TestRegisterMovement_ItemDeOtroUsuario_NotFound(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	// El ítem existe pero pertenece a otro usuario: se responde como inexistente.
	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: otherID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("5"), Reason: entity.MovementReasonSale,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, store.items["item-1"].Quantity.Equal(dec("50")))
}

func TestRegisterMovement_ItemEliminado_NotFound(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	now := time.Now()
	store.items["item-1"].DeletedAt = &now
	uc := newMovementUC(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeIN, Quantity: dec("5"), Reason: entity.MovementReasonPurchase,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_FalloDeEscritura_RollbackCompleto(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	store.failInsert = true
	uc := newMovementUC(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("10"), Reason: entity.MovementReasonSale,
	})
	assert.ErrorIs(t, err, domain.ErrLedgerWrite, "el fallo de escritura se reporta como reintentable")
	assert.True(t, store.items["item-1"].Quantity.Equal(dec("50")),
		"la transacción revertida no debe tocar la proyección")
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "10")
	uc := newMovementUC(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-4"), Reason: entity.MovementReasonCorrection,
	})
	require.NoError(t, err)
	assert.True(t, mov.NewQuantity.Equal(dec("6")))

	// Ajuste negativo que dejaría stock negativo: rechazado.
	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-100"), Reason: entity.MovementReasonCorrection,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRegisterMovement_CostoTotalDerivado(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "0")
	uc := newMovementUC(store)

	unitCost := dec("2.50")
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeIN, Quantity: dec("4"), Reason: entity.MovementReasonPurchase,
		UnitCost: &unitCost, Supplier: "Distribuidora El Galpón",
	})
	require.NoError(t, err)
	require.NotNil(t, mov.TotalCost)
	assert.True(t, mov.TotalCost.Equal(dec("10")))
}

func TestRegisterMovement_FechaNuncaOrdenaLaCadena(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("10"), Reason: entity.MovementReasonSale,
	})
	require.NoError(t, err)

	// Movimiento con fecha de negocio de la semana pasada: entra al final de la cadena igual.
	backdated := time.Now().AddDate(0, 0, -7)
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeOUT, Quantity: dec("5"), Reason: entity.MovementReasonUsage,
		Date: &backdated,
	})
	require.NoError(t, err)
	assert.True(t, mov.PreviousQuantity.Equal(dec("40")),
		"la fecha retroactiva no reordena: encadena sobre el estado actual")
	assert.True(t, mov.NewQuantity.Equal(dec("35")))
	assert.Equal(t, backdated, mov.Date)
}

func TestRegisterMovement_ConcurrenciaSinPerdidas(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "50")
	uc := newMovementUC(store)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
				UserID: ownerID, ItemID: "item-1",
				Type: entity.MovementTypeOUT, Quantity: dec("1"), Reason: entity.MovementReasonUsage,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, store.items["item-1"].Quantity.IsZero(), "sin lost updates: 50 - 50*1 = 0")
	require.Len(t, store.movements, workers)

	// La cadena completa es consistente: cada movimiento parte del NewQuantity anterior.
	chain := make([]*entity.StockMovement, len(store.movements))
	copy(chain, store.movements)
	sort.Slice(chain, func(i, j int) bool { return chain[i].Seq < chain[j].Seq })
	prev := dec("50")
	for _, m := range chain {
		assert.True(t, m.PreviousQuantity.Equal(prev), "seq %d: previous roto", m.Seq)
		assert.True(t, m.NewQuantity.Equal(prev.Sub(dec("1"))), "seq %d: new roto", m.Seq)
		prev = m.NewQuantity
	}
}

func TestListMovements_FiltroYLimites(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", ownerID, "100")
	uc := newMovementUC(store)

	for i := 0; i < 3; i++ {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			UserID: ownerID, ItemID: "item-1",
			Type: entity.MovementTypeOUT, Quantity: dec("1"), Reason: entity.MovementReasonUsage,
		})
		require.NoError(t, err)
	}
	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		UserID: ownerID, ItemID: "item-1",
		Type: entity.MovementTypeIN, Quantity: dec("5"), Reason: entity.MovementReasonPurchase,
	})
	require.NoError(t, err)

	out, err := uc.ListMovements(context.Background(), ownerID, repository.MovementFilter{Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	assert.Len(t, out, 3)

	// Más recientes primero (orden de inserción descendente).
	all, err := uc.ListMovements(context.Background(), ownerID, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, entity.MovementTypeIN, all[0].Type)
}
