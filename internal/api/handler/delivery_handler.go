package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue events.
type EventDispatcher interface {
	Enqueue(event ports.DeliveryEventInput)
	EnqueueBatch(events []ports.DeliveryEventInput)
}

// DeliveryHandler handles delivery status event ingestion from the
// transport fleet.
type DeliveryHandler struct {
	dispatcher EventDispatcher
}

// NewDeliveryHandler creates a DeliveryHandler backed by the given dispatcher.
func NewDeliveryHandler(dispatcher EventDispatcher) *DeliveryHandler {
	return &DeliveryHandler{dispatcher: dispatcher}
}

// Receive handles POST /api/v1/delivery/events: enqueues a single event, returns 202.
func (h *DeliveryHandler) Receive(c echo.Context) error {
	var req deliveryEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toDeliveryInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /api/v1/delivery/events/batch: enqueues a batch, returns 202.
func (h *DeliveryHandler) ReceiveBatch(c echo.Context) error {
	var reqs []deliveryEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.DeliveryEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toDeliveryInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}
