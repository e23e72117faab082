package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/app/repositories"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]models.User
	findErr error
	// raceOnCreate simulates a concurrent insert that wins the unique index.
	raceOnCreate bool
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]models.User{}} }

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok || m.raceOnCreate {
		return "", repositories.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	m.byEmail[u.Email] = *u
	return u.ID.Hex(), nil
}

type memOrders struct {
	mu      sync.Mutex
	orders  []models.Order
	lists   int
	failing bool
}

func (m *memOrders) Create(_ context.Context, o *models.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return "", errors.New("connection refused")
	}
	o.ID = primitive.NewObjectID()
	m.orders = append(m.orders, *o)
	return o.ID.Hex(), nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string, limit int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.failing {
		return nil, errors.New("connection refused")
	}
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
