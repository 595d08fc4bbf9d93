package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, orderNumber, status string, ts time.Time) error
}

type deliveryService struct {
	orders ports.OrderRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewDeliveryService returns a DeliveryService implementation.
func NewDeliveryService(orders ports.OrderRepository, dedup DedupChecker, log zerolog.Logger) ports.DeliveryService {
	return &deliveryService{orders: orders, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single delivery event.
func (s *deliveryService) Process(ctx context.Context, in ports.DeliveryEventInput) error {
	newStatus := domain.OrderStatus(in.Status)

	// 1. Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.OrderNumber, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("order", in.OrderNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("order", in.OrderNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	// 2. Find order (no scope; events come from the transport fleet).
	order, err := s.orders.FindByOrderNumber(ctx, in.OrderNumber, ports.ListOrdersFilter{})
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Validate state machine transition.
	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.OrderNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("order", in.OrderNumber).Msg("failed to set dedup key")
	}

	// 5. Build optional location.
	var loc *domain.Coordinates
	if in.Location != nil {
		loc = &domain.Coordinates{Lat: in.Location.Lat, Lng: in.Location.Lng}
	}

	// 6. Atomically update order status + history.
	if err := s.orders.UpdateStatus(ctx, in.OrderNumber, newStatus, in.Timestamp, in.Source, loc); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}

	// 7. Insert into audit trail (non-fatal on failure).
	auditEvent := &domain.DeliveryEvent{
		OrderNumber: in.OrderNumber,
		Status:      newStatus,
		Timestamp:   in.Timestamp,
		Source:      in.Source,
		Location:    loc,
	}
	if err := s.orders.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("order", in.OrderNumber).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("order", in.OrderNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("delivery event processed")

	return nil
}
