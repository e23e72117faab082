package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/servicehub/app/services"
	"github.com/shashiranjanraj/servicehub/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index handles GET /api/orders[?status=active|completed|cancelled].
func (o *OrderController) Index(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Unauthorized()
		return
	}

	list, err := o.service.List(c.Context(), id.ID, c.Query("status"))
	if err != nil {
		o.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Store handles POST /api/orders.
func (o *OrderController) Store(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Unauthorized()
		return
	}

	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}

	orderID, err := o.service.Submit(c.Context(), id.ID, in)
	if err != nil {
		o.fail(c, err)
		return
	}
	c.OK(map[string]any{"orderId": orderID})
}

func (o *OrderController) fail(c *ctx.Context, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		c.Unauthorized()
		return
	}
	c.Fail(err)
}
