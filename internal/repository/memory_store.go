package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// MemoryStore keeps every aggregate in process. It backs the service when no
// Postgres DSN is configured and doubles as the fake in tests.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	usernames  map[string]int64
	items      map[int64]domain.Item
	itemOrder  []int64
	carts      map[int64]domain.Cart
	cartByUser map[int64]int64
	orders     []domain.Order

	nextUserID  int64
	nextItemID  int64
	nextCartID  int64
	nextOrderID int64

	now func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]domain.User),
		usernames:  make(map[string]int64),
		items:      make(map[int64]domain.Item),
		carts:      make(map[int64]domain.Cart),
		cartByUser: make(map[int64]int64),
		now:        time.Now,
	}
}

// SeedCatalog mirrors the rows inserted by migrations/0002_seed_items.sql.
func (s *MemoryStore) SeedCatalog() {
	ctx := context.Background()
	items := s.Items()
	_ = items.Create(ctx, &domain.Item{Name: "Round Widget", Description: "A widget that is round", Price: decimal.RequireFromString("2.99")})
	_ = items.Create(ctx, &domain.Item{Name: "Square Widget", Description: "A widget that is square", Price: decimal.RequireFromString("1.99")})
}

// Users returns the UserRepository view of the store.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Items returns the ItemRepository view of the store.
func (s *MemoryStore) Items() ItemRepository { return memoryItems{s} }

// Carts returns the CartRepository view of the store.
func (s *MemoryStore) Carts() CartRepository { return memoryCarts{s} }

// Orders returns the OrderRepository view of the store.
func (s *MemoryStore) Orders() OrderRepository { return memoryOrders{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *domain.User) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[user.Username]; exists {
		return domain.ErrUsernameTaken
	}

	s.nextUserID++
	s.nextCartID++
	user.ID = s.nextUserID
	user.CartID = s.nextCartID
	user.CreatedAt = s.now()

	s.users[user.ID] = *user
	s.usernames[user.Username] = user.ID
	cart := domain.NewCart(user.ID, user.Username)
	cart.ID = user.CartID
	cart.UpdatedAt = user.CreatedAt
	s.carts[cart.ID] = *cart
	s.cartByUser[user.ID] = cart.ID
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (m memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	id, ok := m.s.usernames[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := m.s.users[id]
	return &user, nil
}

type memoryItems struct{ s *MemoryStore }

func (m memoryItems) Create(_ context.Context, item *domain.Item) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = *item
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

func (m memoryItems) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	item, ok := m.s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (m memoryItems) List(_ context.Context) ([]domain.Item, error) {
	return m.filter(func(domain.Item) bool { return true }), nil
}

func (m memoryItems) ListByName(_ context.Context, name string) ([]domain.Item, error) {
	return m.filter(func(it domain.Item) bool { return it.Name == name }), nil
}

func (m memoryItems) filter(keep func(domain.Item) bool) []domain.Item {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]domain.Item, 0, len(m.s.itemOrder))
	for _, id := range m.s.itemOrder {
		if it := m.s.items[id]; keep(it) {
			out = append(out, it)
		}
	}
	return out
}

type memoryCarts struct{ s *MemoryStore }

func (m memoryCarts) GetByUserID(_ context.Context, userID int64) (*domain.Cart, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	cartID, ok := m.s.cartByUser[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	cart := m.s.carts[cartID]
	snapshot := cart.Snapshot()
	return &snapshot, nil
}

func (m memoryCarts) Save(_ context.Context, cart *domain.Cart) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[cart.ID]; !ok {
		return domain.ErrCartNotFound
	}
	cart.UpdatedAt = s.now()
	s.carts[cart.ID] = cart.Snapshot()
	return nil
}

type memoryOrders struct{ s *MemoryStore }

func (m memoryOrders) Create(_ context.Context, order *domain.Order) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrderID++
	order.ID = s.nextOrderID
	order.CreatedAt = s.now()

	stored := *order
	stored.Items = append(make([]domain.Item, 0, len(order.Items)), order.Items...)
	s.orders = append(s.orders, stored)
	return nil
}

func (m memoryOrders) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, order := range m.s.orders {
		if order.UserID != userID {
			continue
		}
		order.Items = append(make([]domain.Item, 0, len(order.Items)), order.Items...)
		out = append(out, order)
	}
	return out, nil
}
