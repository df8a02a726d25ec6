package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medistore/internal/order"
)

type placeOrderRequest struct {
	Items           []order.Item `json:"items" binding:"required,min=1"`
	ShippingAddress string       `json:"shippingAddress" binding:"required"`
}

func (a *api) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if !bind(c, &req, "Items and shipping address are required") {
		return
	}
	o, err := a.Orders.Place(c.Request.Context(), order.PlaceInput{
		CustomerID:      identity(c).ID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Order placed successfully", o)
}

func (a *api) myOrders(c *gin.Context) {
	orders, err := a.Orders.List(c.Request.Context(), identity(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Orders fetched successfully", orders)
}

func (a *api) getOrder(c *gin.Context) {
	o, err := a.Orders.Get(c.Request.Context(), c.Param("id"), identity(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Order details fetched successfully", o)
}
