// Package memory implementa todos los puertos del núcleo sobre estructuras en
// memoria. Respalda los tests de casos de uso y sirve de referencia ejecutable
// de la semántica que el adaptador PostgreSQL implementa en SQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Store guarda todo el estado en memoria bajo un solo lock. Los repositorios
// de cada puerto son vistas delgadas sobre el mismo Store.
type Store struct {
	mu sync.RWMutex

	accounts      []*entity.Account
	nextAccountID int64

	entries     map[int64]*entity.JournalEntry
	nextEntryID int64
	nextLineID  int64

	movements   []*entity.InventoryMovement
	items       map[itemKey]*entity.InventoryItem
	ingredients map[string]*entity.Ingredient

	orders   map[int64]*entity.Order
	bookings map[int64]*entity.Booking
}

type itemKey struct {
	companyID    string
	ingredientID string
	locationID   string
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		nextAccountID: 1,
		entries:       make(map[int64]*entity.JournalEntry),
		nextEntryID:   1,
		nextLineID:    1,
		items:         make(map[itemKey]*entity.InventoryItem),
		ingredients:   make(map[string]*entity.Ingredient),
		orders:        make(map[int64]*entity.Order),
		bookings:      make(map[int64]*entity.Booking),
	}
}

// PutIngredient siembra un insumo (tests y arranque).
func (s *Store) PutIngredient(ing *entity.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[ing.CompanyID+"/"+ing.ID] = ing
}

// PutOrder siembra una orden.
func (s *Store) PutOrder(o *entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// PutBooking siembra una reserva.
func (s *Store) PutBooking(b *entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta los callbacks directamente sobre el Store. No simula
// rollback: los tests que lo usan verifican la lógica de los casos de uso,
// no la atomicidad del adaptador SQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos en memoria.
func (r *TxRunner) Run(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	return fn(NewJournalRepository(r.store), NewAccountRepository(r.store))
}

// RunInventory ejecuta fn con repos de libro e inventario en memoria.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	movementRepo repository.InventoryMovementRepository,
	itemRepo repository.InventoryItemRepository,
) error) error {
	return fn(
		NewJournalRepository(r.store),
		NewAccountRepository(r.store),
		NewInventoryMovementRepository(r.store),
		NewInventoryItemRepository(r.store),
	)
}
