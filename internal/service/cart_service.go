package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/lock"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// CartService applies ledger mutations to a user's cart.
type CartService struct {
	users       repository.UserRepository
	items       repository.ItemRepository
	carts       repository.CartRepository
	locker      lock.Locker
	dispatcher  events.Dispatcher
	maxQuantity int
	logger      *zap.Logger
}

const defaultMaxQuantity = 100

// CartDependencies groups the collaborators of CartService. MaxQuantity caps a
// single add or remove; zero means defaultMaxQuantity.
type CartDependencies struct {
	UserRepo    repository.UserRepository
	ItemRepo    repository.ItemRepository
	CartRepo    repository.CartRepository
	Locker      lock.Locker
	Dispatcher  events.Dispatcher
	MaxQuantity int
}

// NewCartService builds the service.
func NewCartService(deps CartDependencies, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewKeyedMutex(0)
	}
	maxQuantity := deps.MaxQuantity
	if maxQuantity <= 0 {
		maxQuantity = defaultMaxQuantity
	}
	return &CartService{
		users:       deps.UserRepo,
		items:       deps.ItemRepo,
		carts:       deps.CartRepo,
		locker:      locker,
		dispatcher:  deps.Dispatcher,
		maxQuantity: maxQuantity,
		logger:      logger,
	}
}

// AddItem appends quantity references to the item.
func (s *CartService) AddItem(ctx context.Context, username string, itemID int64, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, username, itemID, quantity, func(cart *domain.Cart, item domain.Item) int {
		cart.AddItem(item, quantity)
		return quantity
	})
}

// RemoveItem drops up to quantity references to the item. Asking for more than
// the cart holds removes what is there.
func (s *CartService) RemoveItem(ctx context.Context, username string, itemID int64, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, username, itemID, quantity, func(cart *domain.Cart, item domain.Item) int {
		return -cart.RemoveItem(item.ID, quantity)
	})
}

// GetCart returns the current cart of the user.
func (s *CartService) GetCart(ctx context.Context, username string) (*domain.Cart, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.loadCart(ctx, user)
}

func (s *CartService) mutate(ctx context.Context, username string, itemID int64, quantity int, apply func(*domain.Cart, domain.Item) int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity", "must be at least 1")
	}
	if quantity > s.maxQuantity {
		return nil, domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", s.maxQuantity))
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Acquire(ctx, "cart:"+strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, err
	}
	defer unlock()

	cart, err := s.loadCart(ctx, user)
	if err != nil {
		return nil, err
	}

	delta := apply(cart, *item)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug("cart updated",
		zap.String("username", user.Username),
		zap.Int64("item_id", item.ID),
		zap.Int("delta", delta),
		zap.String("total", cart.Total.StringFixed(2)))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventCartUpdated,
		Username: user.Username,
		Payload: events.CartUpdatedPayload{
			CartID:    cart.ID,
			ItemID:    item.ID,
			Delta:     delta,
			ItemCount: len(cart.Items),
			Total:     cart.Total.StringFixed(2),
		},
	})
	return cart, nil
}

func (s *CartService) loadCart(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	cart.Username = user.Username
	return cart, nil
}
