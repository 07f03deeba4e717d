package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
)

type CartServiceSuite struct {
	suite.Suite
	env *testEnv
	ctx context.Context
}

func (s *CartServiceSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.ctx = context.Background()
	s.env.createUser(s.T(), "alice")
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceSuite))
}

func (s *CartServiceSuite) TestAddThenRemove() {
	cart, err := s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, 2)
	s.Require().NoError(err)
	s.Len(cart.Items, 2)
	s.Equal("5.98", cart.Total.StringFixed(2))

	cart, err = s.env.carts.RemoveItem(s.ctx, "alice", roundWidgetID, 2)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Equal("0.00", cart.Total.StringFixed(2))

	updates := s.env.recorder.ofType(events.EventCartUpdated)
	s.Require().Len(updates, 2)
	s.Equal(2, updates[0].Payload.(events.CartUpdatedPayload).Delta)
	s.Equal(-2, updates[1].Payload.(events.CartUpdatedPayload).Delta)
}

func (s *CartServiceSuite) TestChangesArePersisted() {
	_, err := s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, 1)
	s.Require().NoError(err)
	_, err = s.env.carts.AddItem(s.ctx, "alice", squareWidgetID, 3)
	s.Require().NoError(err)

	cart, err := s.env.carts.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(cart.Items, 4)
	s.Equal("8.96", cart.Total.StringFixed(2))
	s.Equal("alice", cart.Username)
}

func (s *CartServiceSuite) TestRemoveMoreThanPresentClamps() {
	_, err := s.env.carts.AddItem(s.ctx, "alice", squareWidgetID, 1)
	s.Require().NoError(err)

	cart, err := s.env.carts.RemoveItem(s.ctx, "alice", squareWidgetID, 5)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.False(cart.Total.IsNegative())
	s.Equal("0.00", cart.Total.StringFixed(2))
}

func (s *CartServiceSuite) TestRejectsNonPositiveQuantity() {
	for _, qty := range []int{0, -1} {
		_, err := s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, qty)
		s.True(domain.IsValidationError(err))
		_, err = s.env.carts.RemoveItem(s.ctx, "alice", roundWidgetID, qty)
		s.True(domain.IsValidationError(err))
	}
	s.Empty(s.env.recorder.ofType(events.EventCartUpdated))
}

func (s *CartServiceSuite) TestQuantityCap() {
	cart, err := s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, defaultMaxQuantity)
	s.Require().NoError(err)
	s.Len(cart.Items, defaultMaxQuantity)

	_, err = s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, defaultMaxQuantity+1)
	s.True(domain.IsValidationError(err))
	_, err = s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, 1<<30)
	s.True(domain.IsValidationError(err))
	_, err = s.env.carts.RemoveItem(s.ctx, "alice", roundWidgetID, defaultMaxQuantity+1)
	s.True(domain.IsValidationError(err))

	cart, err = s.env.carts.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(cart.Items, defaultMaxQuantity)
}

func (s *CartServiceSuite) TestConfiguredQuantityCap() {
	carts := NewCartService(CartDependencies{
		UserRepo:    s.env.store.Users(),
		ItemRepo:    s.env.store.Items(),
		CartRepo:    s.env.store.Carts(),
		Dispatcher:  s.env.dispatcher,
		MaxQuantity: 3,
	}, nil)

	_, err := carts.AddItem(s.ctx, "alice", squareWidgetID, 3)
	s.Require().NoError(err)
	_, err = carts.AddItem(s.ctx, "alice", squareWidgetID, 4)
	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("must be at most 3", verr.Fields["quantity"])
}

func (s *CartServiceSuite) TestUnknownUserOrItem() {
	_, err := s.env.carts.AddItem(s.ctx, "ghost", roundWidgetID, 1)
	s.ErrorIs(err, domain.ErrUserNotFound)

	_, err = s.env.carts.AddItem(s.ctx, "alice", 99, 1)
	s.ErrorIs(err, domain.ErrItemNotFound)

	cart, err := s.env.carts.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(cart.Items)
}

func (s *CartServiceSuite) TestConcurrentAddsAreNotLost() {
	const workers = 25

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := s.env.carts.AddItem(s.ctx, "alice", roundWidgetID, 1)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	cart, err := s.env.carts.GetCart(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(cart.Items, workers)
	s.Equal("74.75", cart.Total.StringFixed(2))
}
