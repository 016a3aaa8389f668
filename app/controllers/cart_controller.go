package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// CartController serves the authenticated cart endpoints.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Add creates or increments a cart line. POST /cart/add/
func (ctl *CartController) Add(c *ctx.Context) {
	var in struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,integer,gte=1"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := ctl.cart.Add(c.UserID(), in.ProductID, in.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Added to cart."})
}

// View returns the cart and its total. GET /cart/view/
func (ctl *CartController) View(c *ctx.Context) {
	view, err := ctl.cart.View(c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}

// Update replaces one line's quantity. PATCH /cart/update/{id}/
func (ctl *CartController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	var in struct {
		Quantity int `json:"quantity" validate:"required,integer,gte=1"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := ctl.cart.UpdateQuantity(c.UserID(), id, in.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Cart updated."})
}

// Remove deletes one cart line. DELETE /cart/remove/{id}/
func (ctl *CartController) Remove(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.NotFound()
		return
	}
	if err := ctl.cart.Remove(c.UserID(), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Removed from cart."})
}
