package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

const maxPageSize = 100

type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// CreateOrder places a new produce order. If an idempotency key is provided
// and already seen, the previously created order is returned without side effects.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
			return &ports.OrderResult{
				OrderNumber:      existing.OrderNumber,
				Status:           string(existing.Status),
				Total:            existing.Total,
				CreatedAt:        existing.CreatedAt,
				ExpectedDelivery: existing.ExpectedDelivery,
				AlreadyExisted:   true,
			}, nil
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber:      generateOrderNumber(),
		BuyerID:          in.BuyerID,
		HubID:            in.HubID,
		Channel:          in.Channel,
		Status:           domain.OrderPending,
		CreatedAt:        now,
		ExpectedDelivery: expectedDelivery(in.Channel, now),
		IdempotencyKey:   in.IdempotencyKey,
		Items:            make([]domain.OrderItem, 0, len(in.Items)),
		StatusHistory: []domain.OrderHistoryEntry{
			{Status: domain.OrderPending, Timestamp: now},
		},
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
		})
		order.Total += item.Quantity * item.UnitPrice
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().Str("order_number", order.OrderNumber).Str("buyer_id", in.BuyerID).Str("hub_id", in.HubID).Msg("order created")

	return &ports.OrderResult{
		OrderNumber:      order.OrderNumber,
		Status:           string(order.Status),
		Total:            order.Total,
		CreatedAt:        order.CreatedAt,
		ExpectedDelivery: order.ExpectedDelivery,
	}, nil
}

// GetOrder retrieves a single order scoped to the requester: buyers see their
// own orders, hub managers see orders routed to their hub, transport
// operators see assigned deliveries.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string, req ports.Requester) (*domain.Order, error) {
	scope, err := requesterScope(req)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByOrderNumber(ctx, orderNumber, scope)
}

func (s *OrderService) ListOrders(ctx context.Context, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	scope, err := requesterScope(in.Requester)
	if err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	scope.Status = in.Status
	scope.Channel = in.Channel
	scope.Search = in.Search
	scope.DateFrom = in.DateFrom
	scope.DateTo = in.DateTo
	scope.Page = page
	scope.Limit = limit

	items, total, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// requesterScope converts a requester into the mandatory repository scope.
// Farmers have no order visibility; an unknown role gets none either.
func requesterScope(req ports.Requester) (ports.ListOrdersFilter, error) {
	switch req.Role {
	case domain.RoleCustomer, domain.RoleRestaurant:
		return ports.ListOrdersFilter{BuyerID: req.UserID}, nil
	case domain.RoleHub:
		if req.HubID == "" {
			return ports.ListOrdersFilter{}, domain.ErrAccessDenied
		}
		return ports.ListOrdersFilter{HubID: req.HubID}, nil
	case domain.RoleTransport:
		return ports.ListOrdersFilter{TransportID: req.UserID}, nil
	default:
		return ports.ListOrdersFilter{}, domain.ErrAccessDenied
	}
}

// generateOrderNumber returns a unique order number in the format MV-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("MV-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("MV-%08X", b)
}

// expectedDelivery estimates the delivery time: restaurant orders are packed
// for next-morning delivery, retail orders get a two-day window.
func expectedDelivery(channel domain.OrderChannel, from time.Time) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), 18, 0, 0, 0, time.UTC)
	if channel == domain.ChannelRestaurant {
		return base.AddDate(0, 0, 1)
	}
	return base.AddDate(0, 0, 2)
}
