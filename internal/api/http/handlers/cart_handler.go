package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/api/validation"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// CartHandler exposes cart mutations.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{carts: cartService}
}

// Add handles POST /api/cart/addToCart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	req, err := parseModifyCart(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.AddItem(c.UserContext(), req.Username, req.ItemID, req.Quantity)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewCartResponse(cart))
}

// Remove handles POST /api/cart/removeFromCart.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	req, err := parseModifyCart(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.RemoveItem(c.UserContext(), req.Username, req.ItemID, req.Quantity)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewCartResponse(cart))
}

func parseModifyCart(c *fiber.Ctx) (dto.ModifyCartRequest, error) {
	var req dto.ModifyCartRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}
	if err := validation.Struct(req); err != nil {
		return req, apperrors.NewValidationError("validation failed", validation.ToDetails(err))
	}
	return req, nil
}
