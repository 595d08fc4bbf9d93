package handler

import "time"

// --- Auth ---

type registerRequest struct {
	Name         string `json:"name"          validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=8"`
	Role         string `json:"role"          validate:"required,oneof=farmer hub customer restaurant transport"`
	HubID        string `json:"hub_id"`
	RestaurantID string `json:"restaurant_id"`
	Language     string `json:"language"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	HubID        string `json:"hub_id,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	Language     string `json:"language,omitempty"`
}

type authResponse struct {
	User      *userResponse `json:"user,omitempty"`
	ExpiresIn int           `json:"expires_in,omitempty"`
}

// --- Orders ---

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	Quantity  float64 `json:"quantity"   validate:"required,gt=0"`
	Unit      string  `json:"unit"       validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}

type createOrderRequest struct {
	HubID string             `json:"hub_id" validate:"required"`
	Items []orderItemRequest `json:"items"  validate:"required,min=1,dive"`
}

type orderLinks struct {
	Self   string `json:"self"`
	Events string `json:"events"`
}

type createOrderResponse struct {
	OrderNumber      string     `json:"order_number"`
	Status           string     `json:"status"`
	Total            float64    `json:"total"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpectedDelivery time.Time  `json:"expected_delivery"`
	Links            orderLinks `json:"_links"`
}

type orderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

type orderHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type getOrderResponse struct {
	OrderNumber      string                 `json:"order_number"`
	Channel          string                 `json:"channel"`
	Status           string                 `json:"status"`
	HubID            string                 `json:"hub_id"`
	Items            []orderItemResponse    `json:"items"`
	Total            float64                `json:"total"`
	CreatedAt        time.Time              `json:"created_at"`
	ExpectedDelivery time.Time              `json:"expected_delivery"`
	StatusHistory    []orderHistoryResponse `json:"status_history"`
	Links            orderLinks             `json:"_links"`
}

// orderSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type orderSummaryResponse struct {
	OrderNumber      string     `json:"order_number"`
	Channel          string     `json:"channel"`
	Status           string     `json:"status"`
	HubID            string     `json:"hub_id"`
	Total            float64    `json:"total"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpectedDelivery time.Time  `json:"expected_delivery"`
	Links            orderLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOrdersResponse struct {
	Data       []orderSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

// --- Delivery events ---

// locationRequest allows zero coordinates: (0, 0) is a valid point.
type locationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type deliveryEventRequest struct {
	OrderNumber string           `json:"order_number" validate:"required"`
	Status      string           `json:"status"       validate:"required,oneof=accepted packed out_for_delivery delivered cancelled"`
	Timestamp   time.Time        `json:"timestamp"    validate:"required"`
	Source      string           `json:"source"       validate:"required"`
	Location    *locationRequest `json:"location"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// --- Inventory ---

type upsertProductRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Unit     string  `json:"unit"     validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Stock    float64 `json:"stock"    validate:"gte=0"`
}

type productResponse struct {
	ID        string    `json:"id"`
	HubID     string    `json:"hub_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"`
	Stock     float64   `json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Profile ---

type updateLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en ta hi ml te kn"`
}
