package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/pkg/database"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
)

// UserRepository reads and writes the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(store *database.Store) *UserRepository {
	return &UserRepository{col: store.Collection(database.UsersCollection)}
}

// FindByEmail looks up a user by exact (already normalized) email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStore(database.UsersCollection, "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", mapErr(err))
	}
	return &user, nil
}

// Create inserts user and returns the new id as hex. A unique-index
// violation on email returns ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	defer metrics.ObserveStore(database.UsersCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("users: create: %w", mapErr(err))
	}
	return insertedHex(res)
}

func insertedHex(res *mongo.InsertOneResult) (string, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("repositories: unexpected inserted id %T", res.InsertedID)
	}
	return id.Hex(), nil
}
