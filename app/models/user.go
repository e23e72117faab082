package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered customer. Users are created once and never updated.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	Name         string             `bson:"name"           json:"name"`
	Email        string             `bson:"email"          json:"email"`
	Phone        string             `bson:"phone"          json:"phone"`
	PasswordHash string             `bson:"passwordHash"   json:"-"`
	CreatedAt    time.Time          `bson:"createdAt"      json:"createdAt"`
}
