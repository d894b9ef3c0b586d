package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yeremiapane/restaurant-client/models"
)

func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/order", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/order/"+id, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// CreateOrder submits a checkout. The gateway assigns the order id,
// snapshots menu prices, and computes the total.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	var order models.Order
	if err := c.send(ctx, http.MethodPost, "/order", req, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateOrderStatus requests a status transition. Legality is not
// checked here; the gateway is the authority and its rejection is
// returned verbatim.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	req := models.StatusUpdateRequest{Status: status}
	if err := c.send(ctx, http.MethodPatch, "/order/"+id+"/status", req, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	if err := c.send(ctx, http.MethodPatch, "/order/"+id+"/cancel", nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateItemQuantity changes the quantity of one line item of an order.
// The body is the bare quantity, as the gateway expects.
func (c *Client) UpdateItemQuantity(ctx context.Context, orderID, itemID string, quantity int) (models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/order/%s/items/%s/quantity", orderID, itemID)
	if err := c.send(ctx, http.MethodPatch, path, quantity, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
