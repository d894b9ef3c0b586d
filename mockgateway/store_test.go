package mockgateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-client/models"
)

func seedMenu(t *testing.T, s *Store) (models.Category, models.Menu) {
	t.Helper()
	category := s.CreateCategory(models.CategoryRequest{Name: "Mains"})
	menu, err := s.CreateMenu(models.MenuRequest{
		Name:       "Chicken Tacos",
		Price:      10.99,
		CategoryID: category.ID,
		Available:  true,
	})
	assert.NoError(t, err)
	return category, menu
}

func TestDeleteCategoryWithMenusConflicts(t *testing.T) {
	s := NewStore()
	category, menu := seedMenu(t, s)

	err := s.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, errCategoryInUse)

	assert.NoError(t, s.DeleteMenu(menu.ID))
	assert.NoError(t, s.DeleteCategory(category.ID))
}

func TestCreateOrderComputesTotalAndStatus(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)

	order, err := s.CreateOrder(models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 2}},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusReceived, order.Status)
	assert.InDelta(t, 21.98, order.Total, 0.001)
	assert.Len(t, order.Items, 1)
}

func TestCreateOrderRejectsEmptyAndUnknown(t *testing.T) {
	s := NewStore()
	seedMenu(t, s)

	_, err := s.CreateOrder(models.OrderRequest{})
	assert.ErrorIs(t, err, errEmptyOrder)

	_, err = s.CreateOrder(models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: "nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, errMenuNotFound)
}

func TestStatusLifecycleEnforced(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)
	order, err := s.CreateOrder(models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 1}},
	})
	assert.NoError(t, err)

	// RECEIVED cannot jump straight to COMPLETED.
	_, err = s.UpdateOrderStatus(order.ID, models.StatusCompleted)
	assert.Error(t, err)

	updated, err := s.UpdateOrderStatus(order.ID, models.StatusProcessing)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	done, err := s.UpdateOrderStatus(order.ID, models.StatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	// Terminal states accept nothing further.
	_, err = s.UpdateOrderStatus(order.ID, models.StatusCancelled)
	assert.Error(t, err)
}

func TestCancelFromReceivedAndProcessing(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)
	req := models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 1}},
	}

	first, _ := s.CreateOrder(req)
	cancelled, err := s.UpdateOrderStatus(first.ID, models.StatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	second, _ := s.CreateOrder(req)
	_, err = s.UpdateOrderStatus(second.ID, models.StatusProcessing)
	assert.NoError(t, err)
	cancelled, err = s.UpdateOrderStatus(second.ID, models.StatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestUpdateItemQuantityRecomputesTotal(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)
	order, _ := s.CreateOrder(models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 2}},
	})

	updated, err := s.UpdateItemQuantity(order.ID, order.Items[0].ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.Items[0].Quantity)
	assert.InDelta(t, 10.99, updated.Total, 0.001)

	// Addressing the line by menu id works too.
	updated, err = s.UpdateItemQuantity(order.ID, menu.ID, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 32.97, updated.Total, 0.001)

	_, err = s.UpdateItemQuantity(order.ID, order.Items[0].ID, 0)
	assert.ErrorIs(t, err, errBadQuantity)
}

func TestUpdateItemQuantityRejectedOnTerminalOrder(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)
	order, _ := s.CreateOrder(models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 2}},
	})
	_, err := s.UpdateOrderStatus(order.ID, models.StatusCancelled)
	assert.NoError(t, err)

	_, err = s.UpdateItemQuantity(order.ID, order.Items[0].ID, 1)
	assert.Error(t, err)
}

func TestOrdersKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	_, menu := seedMenu(t, s)
	req := models.OrderRequest{
		Items: []models.OrderRequestItem{{MenuID: menu.ID, Quantity: 1}},
	}

	first, _ := s.CreateOrder(req)
	second, _ := s.CreateOrder(req)
	third, _ := s.CreateOrder(req)

	orders := s.Orders()
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{orders[0].ID, orders[1].ID, orders[2].ID})

	_, err := s.DeleteOrder(second.ID)
	assert.NoError(t, err)
	orders = s.Orders()
	assert.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, third.ID, orders[1].ID)
}
