package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// ItemsHandler exposes the catalog.
type ItemsHandler struct {
	items *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{items: itemService}
}

// List handles GET /api/item.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.items.List(c.UserContext())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewItemResponses(items))
}

// GetByID handles GET /api/item/:id.
func (h *ItemsHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid id", map[string]any{"id": "must be an integer"})
	}
	item, err := h.items.GetByID(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewItemResponse(*item))
}

// ListByName handles GET /api/item/name/:name.
func (h *ItemsHandler) ListByName(c *fiber.Ctx) error {
	items, err := h.items.ListByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewItemResponses(items))
}
