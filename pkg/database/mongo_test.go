package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDatabaseName(t *testing.T) {
	cases := []struct {
		name, uri, explicit, want string
	}{
		{"explicit wins", "mongodb://localhost/fromuri", "explicit", "explicit"},
		{"uri path", "mongodb://localhost:27017/marketplace?retryWrites=true", "", "marketplace"},
		{"no path", "mongodb://localhost:27017", "", DefaultDatabase},
		{"unparseable", "not a uri", "", DefaultDatabase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DatabaseName(tc.uri, tc.explicit))
		})
	}
}

func TestIndexes(t *testing.T) {
	idx := Indexes()

	users := idx[UsersCollection]
	if assert.Len(t, users, 1) {
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, users[0].Keys)
		assert.True(t, *users[0].Options.Unique)
	}

	orders := idx[OrdersCollection]
	if assert.Len(t, orders, 1) {
		assert.Equal(t, bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}, orders[0].Keys)
	}
}
