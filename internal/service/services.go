package service

import (
	"github.com/deppfellow/toolbox-api/internal/server"
)

// Services is a container for every service the handlers depend on.
type Services struct {
	Toolbox *ToolboxService
}

// NewServices builds the service container from the application Server.
func NewServices(s *server.Server) *Services {
	return &Services{
		Toolbox: NewToolboxService(SystemClock{}, s.Location),
	}
}
