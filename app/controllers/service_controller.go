package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/servicehub/app/services"
	"github.com/shashiranjanraj/servicehub/pkg/ctx"
)

type ServiceController struct {
	catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{catalog: catalog}
}

// Index handles GET /api/services.
func (s *ServiceController) Index(c *ctx.Context) {
	c.JSON(http.StatusOK, map[string]any{"services": s.catalog.All()})
}
