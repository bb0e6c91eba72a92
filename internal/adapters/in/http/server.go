package http

import (
	"context"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NotificationReader lists the notifications persisted for a user.
type NotificationReader interface {
	ListNotifications(ctx context.Context, userID kernel.UUID, limit int) ([]ports.Notification, error)
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server exposes the dispatch engine over HTTP.
// It only translates requests into commands and queries.
type Server struct {
	// Command handlers
	createShipmentHandler commands.CreateShipmentCommandHandler
	dispatchHandler       commands.DispatchShipmentCommandHandler
	manualAssignHandler   commands.ManualAssignCommandHandler
	advanceStatusHandler  commands.AdvanceStatusCommandHandler
	releaseVehicleHandler commands.ReleaseVehicleCommandHandler

	// Fleet administration
	setVehicleStatusHandler commands.SetVehicleStatusCommandHandler
	setZoneStatusHandler    commands.SetZoneStatusCommandHandler

	// Query handlers
	getShipmentHandler         queries.GetShipmentQueryHandler
	getFleetUtilizationHandler queries.GetFleetUtilizationQueryHandler
	notifications              NotificationReader

	health   map[string]HealthCheck
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
}

type Handlers struct {
	CreateShipment      commands.CreateShipmentCommandHandler
	Dispatch            commands.DispatchShipmentCommandHandler
	ManualAssign        commands.ManualAssignCommandHandler
	AdvanceStatus       commands.AdvanceStatusCommandHandler
	ReleaseVehicle      commands.ReleaseVehicleCommandHandler
	SetVehicleStatus    commands.SetVehicleStatusCommandHandler
	SetZoneStatus       commands.SetZoneStatusCommandHandler
	GetShipment         queries.GetShipmentQueryHandler
	GetFleetUtilization queries.GetFleetUtilizationQueryHandler
	Notifications       NotificationReader
}

func NewServer(
	handlers Handlers,
	health map[string]HealthCheck,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) *Server {
	return &Server{
		createShipmentHandler:      handlers.CreateShipment,
		dispatchHandler:            handlers.Dispatch,
		manualAssignHandler:        handlers.ManualAssign,
		advanceStatusHandler:       handlers.AdvanceStatus,
		releaseVehicleHandler:      handlers.ReleaseVehicle,
		setVehicleStatusHandler:    handlers.SetVehicleStatus,
		setZoneStatusHandler:       handlers.SetZoneStatus,
		getShipmentHandler:         handlers.GetShipment,
		getFleetUtilizationHandler: handlers.GetFleetUtilization,
		notifications:              handlers.Notifications,
		health:                     health,
		gatherer:                   gatherer,
		logger:                     logger.With().Str("component", "http").Logger(),
	}
}

// Register mounts every route on e and installs the validator and error handler.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.handleError

	e.GET("/health", s.Health)
	if s.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api/v1")
	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/:id", s.GetShipment)
	api.GET("/shipments/track/:tracking_number", s.TrackShipment)
	api.POST("/shipments/:id/dispatch", s.DispatchShipment)
	api.POST("/shipments/:id/assign", s.AssignShipment)
	api.POST("/shipments/:id/status", s.AdvanceStatus)
	api.POST("/shipments/:id/release", s.ReleaseVehicle)
	api.GET("/fleet/utilization", s.GetFleetUtilization)
	api.PUT("/vehicles/:id", s.UpdateVehicle)
	api.PUT("/zones/:id", s.UpdateZone)
	api.GET("/users/:id/notifications", s.GetNotifications)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	checks := make(map[string]string, len(s.health))
	status := http.StatusOK
	for name, check := range s.health {
		if err := check(c.Request().Context()); err != nil {
			s.logger.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}
	return c.JSON(status, healthResponse{Healthy: status == http.StatusOK, Checks: checks})
}
