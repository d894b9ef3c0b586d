package mockgateway

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-client/models"
)

var (
	errCategoryNotFound = errors.New("category not found")
	errCategoryInUse    = errors.New("cannot delete category with existing menu items")
	errMenuNotFound     = errors.New("menu item not found")
	errOrderNotFound    = errors.New("order not found")
	errEmptyOrder       = errors.New("order must contain at least one item")
	errBadQuantity      = errors.New("quantity must be greater than 0")
)

// Store is the gateway's in-memory state. The production backend this
// fakes also keeps its working set in memory; there is no persistence.
type Store struct {
	mu            sync.RWMutex
	categories    map[string]models.Category
	categoryOrder []string
	menus         map[string]models.Menu
	menuOrder     []string
	orders        map[string]models.Order
	orderOrder    []string
}

func NewStore() *Store {
	return &Store{
		categories: map[string]models.Category{},
		menus:      map[string]models.Menu{},
		orders:     map[string]models.Order{},
	}
}

func (s *Store) CreateCategory(req models.CategoryRequest) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	category := models.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	s.categories[category.ID] = category
	s.categoryOrder = append(s.categoryOrder, category.ID)
	return category
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		out = append(out, s.categories[id])
	}
	return out
}

func (s *Store) UpdateCategory(id string, req models.CategoryRequest) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, errCategoryNotFound
	}
	category.Name = req.Name
	category.Description = req.Description
	s.categories[id] = category
	return category, nil
}

// DeleteCategory rejects deletion while any menu item still references
// the category.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return errCategoryNotFound
	}
	for _, menu := range s.menus {
		if menu.Category.ID == id {
			return errCategoryInUse
		}
	}
	delete(s.categories, id)
	s.categoryOrder = remove(s.categoryOrder, id)
	return nil
}

func (s *Store) CreateMenu(req models.MenuRequest) (models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[req.CategoryID]
	if !ok {
		return models.Menu{}, errCategoryNotFound
	}
	menu := menuFromRequest(uuid.NewString(), category, req)
	s.menus[menu.ID] = menu
	s.menuOrder = append(s.menuOrder, menu.ID)
	return menu, nil
}

func (s *Store) Menus() []models.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Menu, 0, len(s.menuOrder))
	for _, id := range s.menuOrder {
		out = append(out, s.menus[id])
	}
	return out
}

func (s *Store) MenusByCategory(categoryID string) []models.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Menu
	for _, id := range s.menuOrder {
		if menu := s.menus[id]; menu.Category.ID == categoryID {
			out = append(out, menu)
		}
	}
	return out
}

func (s *Store) UpdateMenu(id string, req models.MenuRequest) (models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[id]; !ok {
		return models.Menu{}, errMenuNotFound
	}
	category, ok := s.categories[req.CategoryID]
	if !ok {
		return models.Menu{}, errCategoryNotFound
	}
	menu := menuFromRequest(id, category, req)
	s.menus[id] = menu
	return menu, nil
}

func (s *Store) DeleteMenu(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[id]; !ok {
		return errMenuNotFound
	}
	delete(s.menus, id)
	s.menuOrder = remove(s.menuOrder, id)
	return nil
}

// CreateOrder builds an order from the checkout payload: snapshots each
// referenced menu item, computes the total, assigns a fresh id, and
// starts the lifecycle at RECEIVED.
func (s *Store) CreateOrder(req models.OrderRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(req.Items) == 0 {
		return models.Order{}, errEmptyOrder
	}

	var items []models.OrderItem
	var total float64
	for _, item := range req.Items {
		menu, ok := s.menus[item.MenuID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: %s", errMenuNotFound, item.MenuID)
		}
		if item.Quantity <= 0 {
			return models.Order{}, errBadQuantity
		}
		items = append(items, models.OrderItem{
			ID:       uuid.NewString(),
			Menu:     menu,
			Quantity: item.Quantity,
		})
		total += menu.Price * float64(item.Quantity)
	}

	order := models.Order{
		ID:        uuid.NewString(),
		Items:     items,
		Status:    models.StatusReceived,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
	s.orders[order.ID] = order
	s.orderOrder = append(s.orderOrder, order.ID)
	return order, nil
}

func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orderOrder))
	for _, id := range s.orderOrder {
		out = append(out, s.orders[id])
	}
	return out
}

func (s *Store) Order(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, errOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus enforces the forward-only lifecycle; an illegal
// transition is rejected with a message naming both states.
func (s *Store) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, errOrderNotFound
	}
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("unknown status %q", status)
	}
	if !order.Status.CanTransitionTo(status) {
		return models.Order{}, fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
	}
	order.Status = status
	s.orders[id] = order
	return order, nil
}

// UpdateItemQuantity changes a single line's quantity and recomputes
// the total. Orders in a terminal state no longer accept edits. The
// item may be addressed by line id or by menu id.
func (s *Store) UpdateItemQuantity(orderID, itemID string, quantity int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, errOrderNotFound
	}
	if order.Status.IsTerminal() {
		return models.Order{}, fmt.Errorf("order %s is %s and can no longer change", orderID, order.Status)
	}
	if quantity <= 0 {
		return models.Order{}, errBadQuantity
	}

	found := false
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	var total float64
	for i := range items {
		if items[i].ID == itemID || items[i].Menu.ID == itemID {
			items[i].Quantity = quantity
			found = true
		}
		total += items[i].Menu.Price * float64(items[i].Quantity)
	}
	if !found {
		return models.Order{}, fmt.Errorf("%w in order %s", errMenuNotFound, orderID)
	}

	order.Items = items
	order.Total = total
	s.orders[orderID] = order
	return order, nil
}

// DeleteOrder removes an order outright. The real backend only does
// this from its retention cleanup, which is where the order_deleted
// channel event comes from.
func (s *Store) DeleteOrder(id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, errOrderNotFound
	}
	delete(s.orders, id)
	s.orderOrder = remove(s.orderOrder, id)
	return order, nil
}

func menuFromRequest(id string, category models.Category, req models.MenuRequest) models.Menu {
	return models.Menu{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
		SpicyLevel:      req.SpicyLevel,
		Allergens:       req.Allergens,
		NutritionalInfo: req.NutritionalInfo,
	}
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
