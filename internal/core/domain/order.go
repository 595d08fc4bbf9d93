package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a produce order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderAccepted       OrderStatus = "accepted"
	OrderPacked         OrderStatus = "packed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// orderTransitions defines the allowed state machine transitions.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderAccepted, OrderCancelled},
	OrderAccepted:       {OrderPacked, OrderCancelled},
	OrderPacked:         {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderChannel distinguishes retail customers from restaurant buyers.
type OrderChannel string

const (
	ChannelCustomer   OrderChannel = "customer"
	ChannelRestaurant OrderChannel = "restaurant"
)

// OrderItem is a single produce line on an order.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  float64 `json:"quantity" bson:"quantity"`
	Unit      string  `json:"unit" bson:"unit"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// OrderHistoryEntry records a single status transition on an order.
type OrderHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is the core aggregate: produce moving from a farmer through a hub
// to a customer or restaurant.
type Order struct {
	ID               string              `json:"id" bson:"_id,omitempty"`
	OrderNumber      string              `json:"order_number" bson:"order_number"`
	BuyerID          string              `json:"buyer_id" bson:"buyer_id"`
	HubID            string              `json:"hub_id" bson:"hub_id"`
	FarmerID         string              `json:"farmer_id,omitempty" bson:"farmer_id,omitempty"`
	TransportID      string              `json:"transport_id,omitempty" bson:"transport_id,omitempty"`
	Channel          OrderChannel        `json:"channel" bson:"channel"`
	Items            []OrderItem         `json:"items" bson:"items"`
	Total            float64             `json:"total" bson:"total"`
	Status           OrderStatus         `json:"status" bson:"status"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	ExpectedDelivery time.Time           `json:"expected_delivery" bson:"expected_delivery"`
	IdempotencyKey   string              `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory    []OrderHistoryEntry `json:"status_history" bson:"status_history"`
}

// DeliveryEvent represents a status update reported by a transport operator.
type DeliveryEvent struct {
	OrderNumber string
	Status      OrderStatus
	Timestamp   time.Time
	Source      string
	Location    *Coordinates // optional
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}
