package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
)

// OrdersHandler exposes order submission and history.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Submit handles POST /api/order/submit/:username.
func (h *OrdersHandler) Submit(c *fiber.Ctx) error {
	order, err := h.orders.Submit(c.UserContext(), c.Params("username"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// History handles GET /api/order/history/:username.
func (h *OrdersHandler) History(c *fiber.Ctx) error {
	orders, err := h.orders.ListForUser(c.UserContext(), c.Params("username"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewOrderResponses(orders))
}
