package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/lock"
	"github.com/spec-kit/storefront-service/internal/repository"
)

type testEnv struct {
	store      *repository.MemoryStore
	dispatcher events.Dispatcher
	recorder   *eventRecorder
	users      *UserService
	items      *ItemService
	carts      *CartService
	orders     *OrderService
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) ofType(t events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{BcryptCost: 4, PasswordMinLength: 7}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	store.SeedCatalog()

	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	for _, et := range []events.EventType{events.EventUserCreated, events.EventCartUpdated, events.EventOrderSubmitted} {
		dispatcher.Subscribe(et, recorder.record)
	}

	logger := zap.NewNop()
	return &testEnv{
		store:      store,
		dispatcher: dispatcher,
		recorder:   recorder,
		users:      NewUserService(testAuthConfig(), store.Users(), dispatcher, logger),
		items:      NewItemService(store.Items()),
		carts: NewCartService(CartDependencies{
			UserRepo:   store.Users(),
			ItemRepo:   store.Items(),
			CartRepo:   store.Carts(),
			Locker:     lock.NewKeyedMutex(0),
			Dispatcher: dispatcher,
		}, logger),
		orders: NewOrderService(OrderDependencies{
			UserRepo:   store.Users(),
			CartRepo:   store.Carts(),
			OrderRepo:  store.Orders(),
			Dispatcher: dispatcher,
		}, logger),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), CreateUserInput{
		Username:        username,
		Password:        "s3cretpw",
		ConfirmPassword: "s3cretpw",
	})
	require.NoError(t, err)
	return user
}

const (
	roundWidgetID  int64 = 1
	squareWidgetID int64 = 2
)
