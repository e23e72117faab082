package models

// Service is a bookable catalog entry.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DaytimeOnly bool   `json:"daytimeOnly,omitempty"`
}

// Daytime booking window for DaytimeOnly services: [DaytimeStartHour, DaytimeEndHour).
const (
	DaytimeStartHour = 6
	DaytimeEndHour   = 18
)

// Catalog is the fixed list of bookable services, in display order.
var Catalog = []Service{
	{ID: "coconut-plucking", Name: "Coconut Plucking", DaytimeOnly: true},
	{ID: "well-cleaning", Name: "Well Cleaning", DaytimeOnly: true},
	{ID: "water-tank-cleaning", Name: "Water Tank Cleaning"},
	{ID: "house-cleaning", Name: "House Cleaning"},
	{ID: "garden-maintenance", Name: "Garden & Lawn Maintenance", DaytimeOnly: true},
	{ID: "chauffeur", Name: "Chauffeur / Call Driver"},
	{ID: "auto-rickshaw", Name: "Auto Rickshaw On-Demand"},
	{ID: "plumbing", Name: "Plumbing Services"},
	{ID: "electrical", Name: "Electrical Work"},
	{ID: "carpentry", Name: "Carpentry & Small Repairs"},
	{ID: "painting", Name: "Painting Services", DaytimeOnly: true},
}
