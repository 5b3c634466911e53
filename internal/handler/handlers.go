package handler

import (
	"github.com/deppfellow/toolbox-api/internal/server"
	"github.com/deppfellow/toolbox-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Toolbox *ToolboxHandler // Toolbox serves the utility endpoints.
	Health  *HealthHandler  // Health serves the service health endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Toolbox: NewToolboxHandler(s, services.Toolbox),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
