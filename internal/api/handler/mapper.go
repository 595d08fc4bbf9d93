package handler

import (
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateOrderInput(req createOrderRequest, requester ports.Requester, idempotencyKey string) ports.CreateOrderInput {
	channel := domain.ChannelCustomer
	if requester.Role == domain.RoleRestaurant {
		channel = domain.ChannelRestaurant
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
		})
	}

	return ports.CreateOrderInput{
		BuyerID:        requester.UserID,
		Channel:        channel,
		HubID:          req.HubID,
		Items:          items,
		IdempotencyKey: idempotencyKey,
	}
}

func toDeliveryInput(r deliveryEventRequest) ports.DeliveryEventInput {
	in := ports.DeliveryEventInput{
		OrderNumber: r.OrderNumber,
		Status:      r.Status,
		Timestamp:   r.Timestamp,
		Source:      r.Source,
	}
	if r.Location != nil {
		in.Location = &ports.LocationInput{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	return in
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		HubID:        u.HubID,
		RestaurantID: u.RestaurantID,
		Language:     u.Language,
	}
}

func toCreateOrderResponse(r *ports.OrderResult) createOrderResponse {
	return createOrderResponse{
		OrderNumber:      r.OrderNumber,
		Status:           r.Status,
		Total:            r.Total,
		CreatedAt:        r.CreatedAt.UTC(),
		ExpectedDelivery: r.ExpectedDelivery.UTC(),
		Links:            linksFor(r.OrderNumber),
	}
}

func toGetOrderResponse(o *domain.Order) getOrderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
		}
	}

	history := make([]orderHistoryResponse, len(o.StatusHistory))
	for i, h := range o.StatusHistory {
		history[i] = orderHistoryResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			Notes:     h.Notes,
		}
	}

	return getOrderResponse{
		OrderNumber:      o.OrderNumber,
		Channel:          string(o.Channel),
		Status:           string(o.Status),
		HubID:            o.HubID,
		Items:            items,
		Total:            o.Total,
		CreatedAt:        o.CreatedAt.UTC(),
		ExpectedDelivery: o.ExpectedDelivery.UTC(),
		StatusHistory:    history,
		Links:            linksFor(o.OrderNumber),
	}
}

func toListOrdersResponse(r *ports.ListOrdersResult) listOrdersResponse {
	items := make([]orderSummaryResponse, len(r.Items))
	for i, o := range r.Items {
		items[i] = orderSummaryResponse{
			OrderNumber:      o.OrderNumber,
			Channel:          string(o.Channel),
			Status:           string(o.Status),
			HubID:            o.HubID,
			Total:            o.Total,
			CreatedAt:        o.CreatedAt.UTC(),
			ExpectedDelivery: o.ExpectedDelivery.UTC(),
			Links:            linksFor(o.OrderNumber),
		}
	}
	return listOrdersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		HubID:     p.HubID,
		Name:      p.Name,
		Category:  p.Category,
		Unit:      p.Unit,
		Price:     p.Price,
		Stock:     p.Stock,
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func linksFor(orderNumber string) orderLinks {
	return orderLinks{
		Self:   "/api/v1/orders/" + orderNumber,
		Events: "/api/v1/delivery/events/" + orderNumber,
	}
}
