package services

import (
	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/pkg/collection"
)

// CatalogService serves the fixed service catalog.
type CatalogService struct {
	services []models.Service
	byID     map[string]models.Service
}

func NewCatalogService(services []models.Service) *CatalogService {
	return &CatalogService{
		services: services,
		byID:     collection.KeyBy(services, func(s models.Service) string { return s.ID }),
	}
}

// All returns the catalog in display order.
func (c *CatalogService) All() []models.Service {
	return append([]models.Service(nil), c.services...)
}

// Find looks up a service by id.
func (c *CatalogService) Find(id string) (models.Service, bool) {
	s, ok := c.byID[id]
	return s, ok
}
