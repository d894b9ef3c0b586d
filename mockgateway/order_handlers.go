package mockgateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

func (g *Gateway) getOrders(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of orders", g.store.Orders())
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, err := g.store.Order(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := g.store.CreateOrder(req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	g.hub.BroadcastOrderCreated(order)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := g.store.UpdateOrderStatus(c.Param("order_id"), req.Status)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	g.hub.BroadcastOrderUpdated(order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (g *Gateway) cancelOrder(c *gin.Context) {
	order, err := g.store.UpdateOrderStatus(c.Param("order_id"), models.StatusCancelled)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	g.hub.BroadcastOrderUpdated(order)
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

func (g *Gateway) updateItemQuantity(c *gin.Context) {
	var quantity int
	if err := c.ShouldBindJSON(&quantity); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := g.store.UpdateItemQuantity(c.Param("order_id"), c.Param("item_id"), quantity)
	if err != nil {
		utils.RespondError(c, orderErrorStatus(err), err)
		return
	}
	g.hub.BroadcastOrderUpdated(order)
	utils.RespondJSON(c, http.StatusOK, "Order quantity updated", order)
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	order, err := g.store.DeleteOrder(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	g.hub.BroadcastOrderDeleted(order)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}

func orderErrorStatus(err error) int {
	if errors.Is(err, errOrderNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
