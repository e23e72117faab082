package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/servicehub/pkg/collection"
)

// StatusPending is the status of every newly submitted order.
const StatusPending = "pending"

// Order is a booking placed by a user. UserID always comes from the
// session, never from the request body.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	ServiceType string             `bson:"serviceType"`
	Date        string             `bson:"date"`
	Time        string             `bson:"time"`
	Address     string             `bson:"address"`
	Locality    string             `bson:"locality"`
	Notes       *string            `bson:"notes,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// OrderView is the sanitized shape returned to the owner.
type OrderView struct {
	ID          string    `json:"id"`
	ServiceType string    `json:"serviceType"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Address     string    `json:"address"`
	Locality    string    `json:"locality"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// View drops the owner and storage fields. Absent notes become "".
func (o Order) View() OrderView {
	v := OrderView{
		ID:          o.ID.Hex(),
		ServiceType: o.ServiceType,
		Date:        o.Date,
		Time:        o.Time,
		Address:     o.Address,
		Locality:    o.Locality,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
	if o.Notes != nil {
		v.Notes = *o.Notes
	}
	return v
}

// StatusGroup buckets free-form order statuses.
type StatusGroup string

const (
	GroupActive    StatusGroup = "active"
	GroupCompleted StatusGroup = "completed"
	GroupCancelled StatusGroup = "cancelled"
	GroupOther     StatusGroup = ""
)

var statusGroups = map[string]StatusGroup{
	"pending":     GroupActive,
	"scheduled":   GroupActive,
	"processing":  GroupActive,
	"in-progress": GroupActive,
	"assigned":    GroupActive,
	"completed":   GroupCompleted,
	"done":        GroupCompleted,
	"finished":    GroupCompleted,
	"cancelled":   GroupCancelled,
	"rejected":    GroupCancelled,
	"declined":    GroupCancelled,
}

// GroupOf classifies status case-insensitively. Unknown statuses belong to
// no group.
func GroupOf(status string) StatusGroup {
	return statusGroups[strings.ToLower(strings.TrimSpace(status))]
}

// OrderSummary counts a page of orders by status group.
type OrderSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Summarize counts views by group. Orders in no group only count toward
// Total.
func Summarize(views []OrderView) OrderSummary {
	counts := collection.CountBy(views, func(v OrderView) StatusGroup { return GroupOf(v.Status) })
	return OrderSummary{
		Total:     len(views),
		Active:    counts[GroupActive],
		Completed: counts[GroupCompleted],
		Cancelled: counts[GroupCancelled],
	}
}
