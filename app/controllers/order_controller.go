package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// OrderController serves placement, tracking, status updates, and the
// live order-status websocket stream.
type OrderController struct {
	orders *services.OrderService
	hub    *ws.Hub
}

func NewOrderController(orders *services.OrderService, hub *ws.Hub) *OrderController {
	return &OrderController{orders: orders, hub: hub}
}

// Place converts the cart into an order. POST /order/place/
func (ctl *OrderController) Place(c *ctx.Context) {
	var in struct {
		ShippingAddress string `json:"shipping_address" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := ctl.orders.Place(c.UserID(), in.ShippingAddress)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// Track lists the caller's orders, newest first. GET /order/track/
func (ctl *OrderController) Track(c *ctx.Context) {
	orders, err := ctl.orders.Track(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// UpdateStatus is admin-only. PATCH /order/update-status/{id}/
func (ctl *OrderController) UpdateStatus(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := ctl.orders.UpdateStatus(id, in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// Stream upgrades to a websocket keyed by the caller's user id, so
// order events reach every open tab of that user. GET /ws/orders
func (ctl *OrderController) Stream(c *ctx.Context) {
	ws.UpgradeKeyed(c.W, c.R, ctl.hub, services.UserKey(c.UserID()))
}
