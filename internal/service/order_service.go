package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// OrderService turns carts into immutable orders.
type OrderService struct {
	users      repository.UserRepository
	carts      repository.CartRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies groups the collaborators of OrderService.
type OrderDependencies struct {
	UserRepo   repository.UserRepository
	CartRepo   repository.CartRepository
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		users:      deps.UserRepo,
		carts:      deps.CartRepo,
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Submit snapshots the user's cart into a new order. The cart itself is left as is.
func (s *OrderService) Submit(ctx context.Context, username string) (*domain.Order, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	cart.Username = user.Username

	order := domain.NewOrderFromCart(cart)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(order.Items))
	for _, it := range order.Items {
		itemIDs = append(itemIDs, it.ID)
	}
	s.logger.Info("order submitted",
		zap.Int64("order_id", order.ID),
		zap.String("username", user.Username),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventOrderSubmitted,
		Username: user.Username,
		Payload: events.OrderSubmittedPayload{
			OrderID:   order.ID,
			ItemIDs:   itemIDs,
			ItemCount: len(order.Items),
			Total:     order.Total.StringFixed(2),
		},
	})
	return order, nil
}

// ListForUser returns the user's orders in creation order.
func (s *OrderService) ListForUser(ctx context.Context, username string) ([]domain.Order, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Username = user.Username
	}
	return orders, nil
}
