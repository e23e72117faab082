package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/pkg/database"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
)

// OrderRepository reads and writes the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(store *database.Store) *OrderRepository {
	return &OrderRepository{col: store.Collection(database.OrdersCollection)}
}

// Create inserts order and returns the new id as hex.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	defer metrics.ObserveStore(database.OrdersCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("orders: create: %w", mapErr(err))
	}
	return insertedHex(res)
}

// ListByUser returns up to limit orders owned by userID, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Order, error) {
	defer metrics.ObserveStore(database.OrdersCollection, "find", time.Now())

	opts := listOptions(limit)
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}

	orders := make([]models.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

func listOptions(limit int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
}
