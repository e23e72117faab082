package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapErr(dup), ErrDuplicate)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, mapErr(other))
}

func TestMapErrWrapped(t *testing.T) {
	err := fmt.Errorf("users: create: %w", mapErr(mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000}},
	}))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestInsertedHex(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := insertedHex(&mongo.InsertOneResult{InsertedID: id})
	assert.NoError(t, err)
	assert.Equal(t, id.Hex(), got)

	_, err = insertedHex(&mongo.InsertOneResult{InsertedID: "not-an-oid"})
	assert.Error(t, err)
}

func TestListOptions(t *testing.T) {
	opts := listOptions(50)
	assert.Equal(t, int64(50), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}
