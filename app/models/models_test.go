package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupOf(t *testing.T) {
	assert.Equal(t, GroupActive, GroupOf("pending"))
	assert.Equal(t, GroupActive, GroupOf("In-Progress"))
	assert.Equal(t, GroupCompleted, GroupOf("DONE"))
	assert.Equal(t, GroupCancelled, GroupOf("declined"))
	assert.Equal(t, GroupOther, GroupOf("on-hold"))
}

func TestSummarize(t *testing.T) {
	views := []OrderView{
		{Status: "pending"}, {Status: "assigned"}, {Status: "finished"},
		{Status: "rejected"}, {Status: "on-hold"},
	}
	assert.Equal(t, OrderSummary{Total: 5, Active: 2, Completed: 1, Cancelled: 1}, Summarize(views))
	assert.Equal(t, OrderSummary{}, Summarize(nil))
}

func TestOrderView(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	o := Order{
		ID: id, UserID: "owner", ServiceType: "plumbing", Date: "2026-05-02", Time: "10:00",
		Address: "12 MG Road", Locality: "Kochi", Status: StatusPending, CreatedAt: created,
	}

	v := o.View()
	assert.Equal(t, id.Hex(), v.ID)
	assert.Equal(t, "", v.Notes)
	assert.Equal(t, created, v.CreatedAt)

	notes := "gate code 42"
	o.Notes = &notes
	assert.Equal(t, "gate code 42", o.View().Notes)
}

func TestCatalog(t *testing.T) {
	assert.Len(t, Catalog, 11)
	daytime := map[string]bool{}
	for _, s := range Catalog {
		if s.DaytimeOnly {
			daytime[s.ID] = true
		}
	}
	assert.Equal(t, map[string]bool{
		"coconut-plucking": true, "well-cleaning": true, "garden-maintenance": true, "painting": true,
	}, daytime)
}
