package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

const (
	ordersCollection         = "orders"
	deliveryEventsCollection = "delivery_events"
)

type OrderRepository struct {
	col    *mongo.Collection
	events *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		col:    db.Collection(ordersCollection),
		events: db.Collection(deliveryEventsCollection),
	}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	return err
}

// FindByOrderNumber retrieves an order. Non-empty scope fields narrow the
// query so out-of-scope documents surface as not-found.
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string, scope ports.ListOrdersFilter) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"order_number": orderNumber}
	applyScope(filter, scope)

	var o domain.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIdempotencyKey retrieves an existing order created with the given key.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	err := r.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns a page of orders matching filter and the total count.
func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	applyScope(filter, f)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Channel != "" {
		filter["channel"] = f.Channel
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"order_number": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"items.name": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if created := dateRange(f.DateFrom, f.DateTo); created != nil {
		filter["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus atomically sets the order status and appends a history entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, ts time.Time, source string, location *domain.Coordinates) error {
	historyEntry := bson.M{
		"status":    string(status),
		"timestamp": ts.UTC(),
		"notes":     source,
	}

	filter := bson.M{"order_number": orderNumber}
	update := bson.M{
		"$set":  bson.M{"status": string(status)},
		"$push": bson.M{"status_history": historyEntry},
	}

	_, err := r.col.UpdateOne(ctx, filter, update)
	return err
}

// InsertEvent persists a delivery event to the delivery_events audit collection.
func (r *OrderRepository) InsertEvent(ctx context.Context, event *domain.DeliveryEvent) error {
	doc := bson.M{
		"order_number": event.OrderNumber,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}
	if event.Location != nil {
		doc["location"] = bson.M{
			"lat": event.Location.Lat,
			"lng": event.Location.Lng,
		}
	}

	_, err := r.events.InsertOne(ctx, doc)
	return err
}

// CountByStatus aggregates order counts within a scope for dashboards.
func (r *OrderRepository) CountByStatus(ctx context.Context, scope ports.ListOrdersFilter) (map[domain.OrderStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	applyScope(match, scope)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.OrderStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[domain.OrderStatus(row.ID)] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}},
		{Keys: bson.D{{Key: "buyer_id", Value: 1}}},
		{Keys: bson.D{{Key: "hub_id", Value: 1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func applyScope(filter bson.M, scope ports.ListOrdersFilter) {
	if scope.BuyerID != "" {
		filter["buyer_id"] = scope.BuyerID
	}
	if scope.HubID != "" {
		filter["hub_id"] = scope.HubID
	}
	if scope.TransportID != "" {
		filter["transport_id"] = scope.TransportID
	}
}

func dateRange(from, to time.Time) bson.M {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	created := bson.M{}
	if !from.IsZero() {
		created["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		created["$lte"] = to.UTC()
	}
	return created
}
