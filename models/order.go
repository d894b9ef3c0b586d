package models

import "time"

type OrderStatus string

const (
	StatusReceived   OrderStatus = "RECEIVED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// allowedTransitions encodes the forward-only order lifecycle:
// RECEIVED -> PROCESSING -> COMPLETED, with cancellation possible
// from RECEIVED or PROCESSING. COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusReceived:   {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether moving from s to next is a legal
// status transition. The gateway is the authority on transitions; the
// client sends requests without pre-validating and surfaces rejections.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// OrderItem is a line of an order: a snapshot of the menu item at
// ordering time plus the ordered quantity.
type OrderItem struct {
	ID       string `json:"id"`
	Menu     Menu   `json:"menuItem"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

type OrderRequestItem struct {
	MenuID   string `json:"menuId"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the checkout payload. Item prices are not sent;
// the gateway snapshots them from the catalog.
type OrderRequest struct {
	CustomerInfo CustomerInfo       `json:"customerInfo"`
	Items        []OrderRequestItem `json:"items"`
}

// StatusUpdateRequest is the body of PATCH /order/{id}/status.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
