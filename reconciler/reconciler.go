// Package reconciler merges a one-time REST snapshot of orders with a
// live stream of creation/update/delete events into one consistent,
// de-duplicated, display-ordered list.
package reconciler

import (
	"sync"

	"github.com/yeremiapane/restaurant-client/models"
)

// OrderList is the reconciler's state: an ordered collection of orders,
// unique by id, in order of first appearance. Events and the snapshot
// may arrive from different goroutines (the websocket reader and the
// REST fetch); a mutex serializes them in arrival order, the way the
// browser's event queue serialized the original.
type OrderList struct {
	mu       sync.Mutex
	orders   []models.Order
	onChange func([]models.Order)
}

func New() *OrderList {
	return &OrderList{}
}

// SetOnChange registers a callback invoked with a copy of the full list
// after every mutation that changed it. Set it before feeding events.
func (l *OrderList) SetOnChange(fn func([]models.Order)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// ApplyCreated appends the order if its id is new, or overwrites the
// existing entry in place on duplicate delivery. Creation is therefore
// idempotent: each id appears at most once.
func (l *OrderList) ApplyCreated(order models.Order) {
	l.upsert(order)
}

// ApplyUpdated replaces the order with the matching id in place,
// preserving list position. An update for an unknown id is treated as
// a late-arriving creation and appended.
func (l *OrderList) ApplyUpdated(order models.Order) {
	l.upsert(order)
}

// ApplyDeleted removes the order with the given id; absent ids are a
// no-op.
func (l *OrderList) ApplyDeleted(orderID string) {
	l.mu.Lock()
	i := l.find(orderID)
	if i < 0 {
		l.mu.Unlock()
		return
	}
	l.orders = append(l.orders[:i], l.orders[i+1:]...)
	l.notifyLocked()
	l.mu.Unlock()
}

// MergeSnapshot folds the REST snapshot into the list. Ids not seen
// yet are appended in snapshot order; ids that an event already
// produced keep the event's version — last write wins by arrival
// order, so a snapshot resolving late never clobbers fresher events.
func (l *OrderList) MergeSnapshot(orders []models.Order) {
	l.mu.Lock()
	changed := false
	for _, order := range orders {
		if l.find(order.ID) >= 0 {
			continue
		}
		l.orders = append(l.orders, order)
		changed = true
	}
	if changed {
		l.notifyLocked()
	}
	l.mu.Unlock()
}

// Orders returns a copy of the current list in display order.
func (l *OrderList) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Get returns the order with the given id, if present.
func (l *OrderList) Get(orderID string) (models.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.find(orderID); i >= 0 {
		return l.orders[i], true
	}
	return models.Order{}, false
}

func (l *OrderList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

func (l *OrderList) upsert(order models.Order) {
	l.mu.Lock()
	if i := l.find(order.ID); i >= 0 {
		l.orders[i] = order
	} else {
		l.orders = append(l.orders, order)
	}
	l.notifyLocked()
	l.mu.Unlock()
}

func (l *OrderList) find(orderID string) int {
	for i, o := range l.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}

// notifyLocked calls the change callback with a snapshot copy. Caller
// holds the mutex; the callback must not call back into the list.
func (l *OrderList) notifyLocked() {
	if l.onChange == nil {
		return
	}
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	l.onChange(out)
}
