package ports

import (
	"context"
	"time"
)

// LocationInput carries optional geographic coordinates for a delivery event.
type LocationInput struct {
	Lat float64
	Lng float64
}

// DeliveryEventInput is the DTO passed from the transport layer to DeliveryService.
type DeliveryEventInput struct {
	OrderNumber string
	Status      string
	Timestamp   time.Time
	Source      string
	Location    *LocationInput // optional
}

// DeliveryService processes incoming delivery status events.
type DeliveryService interface {
	Process(ctx context.Context, event DeliveryEventInput) error
}
