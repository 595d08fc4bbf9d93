package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a produce item stocked at a hub.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	HubID     string    `json:"hub_id" bson:"hub_id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	Unit      string    `json:"unit" bson:"unit"`
	Price     float64   `json:"price" bson:"price"`
	Stock     float64   `json:"stock" bson:"stock"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
