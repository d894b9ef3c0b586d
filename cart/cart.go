// Package cart implements the client-local cart: an order-preserving
// list of menu lines keyed by menu item id, with a running total.
package cart

import (
	"github.com/yeremiapane/restaurant-client/models"
)

// Line is one (menu item, quantity) pairing inside the cart.
type Line struct {
	Menu     models.Menu
	Quantity int
}

// Cart accumulates selected menu items. It holds at most one line per
// menu item id; adding an item already present raises that line's
// quantity instead of appending a duplicate. Quantities are clamped to
// a minimum of 1 at this boundary, on every mutation path.
//
// A Cart is not safe for concurrent use; each session owns one.
type Cart struct {
	lines []Line
	total float64
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges the item into the cart. An existing line for the same
// menu id has its quantity increased; otherwise a new line is appended
// at the end, preserving insertion order.
func (c *Cart) AddItem(menu models.Menu, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.find(menu.ID); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, Line{Menu: menu, Quantity: quantity})
	}
	c.recalc()
}

// RemoveItem deletes the line with the given menu id. Removing an
// absent id is a no-op.
func (c *Cart) RemoveItem(menuID string) {
	i := c.find(menuID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.recalc()
}

// UpdateQuantity replaces the quantity of the line with the given menu
// id. Updating an absent id is a no-op.
func (c *Cart) UpdateQuantity(menuID string, quantity int) {
	i := c.find(menuID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	c.lines[i].Quantity = quantity
	c.recalc()
}

// Clear resets the cart to empty with a zero total.
func (c *Cart) Clear() {
	c.lines = nil
	c.total = 0
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() float64 {
	return c.total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ToOrderRequest builds the checkout payload for the gateway.
func (c *Cart) ToOrderRequest(info models.CustomerInfo) models.OrderRequest {
	items := make([]models.OrderRequestItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, models.OrderRequestItem{
			MenuID:   line.Menu.ID,
			Quantity: line.Quantity,
		})
	}
	return models.OrderRequest{CustomerInfo: info, Items: items}
}

func (c *Cart) find(menuID string) int {
	for i, line := range c.lines {
		if line.Menu.ID == menuID {
			return i
		}
	}
	return -1
}

func (c *Cart) recalc() {
	var total float64
	for _, line := range c.lines {
		total += line.Menu.Price * float64(line.Quantity)
	}
	c.total = total
}
