package http

import (
	"net/http"
	"strconv"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/zone"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// GetFleetUtilization handles GET /api/v1/fleet/utilization?zone_id=.
func (s *Server) GetFleetUtilization(c echo.Context) error {
	if _, err := dispatcherFrom(c); err != nil {
		return err
	}

	var zoneID *kernel.UUID
	if raw := c.QueryParam("zone_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("zone_id", err)
		}
		zoneID = &id
	}

	fleet, err := s.getFleetUtilizationHandler.Handle(c.Request().Context(), queries.NewGetFleetUtilizationQuery(zoneID))
	if err != nil {
		return err
	}

	response := make([]vehicleUtilizationResponse, len(fleet))
	for i, v := range fleet {
		response[i] = newVehicleUtilizationResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateVehicle handles PUT /api/v1/vehicles/:id.
func (s *Server) UpdateVehicle(c echo.Context) error {
	caller, err := dispatcherFrom(c)
	if err != nil {
		return err
	}
	vehicleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateVehicleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var status *vehicle.Status
	if req.Status != nil {
		parsed, err := vehicle.ParseStatus(*req.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}
	zoneChange, err := referenceChange(req.ZoneID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("zone_id", err)
	}
	driverChange, err := referenceChange(req.DefaultDriverID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("default_driver_id", err)
	}

	cmd, err := commands.NewSetVehicleStatusCommand(vehicleID, status, zoneChange, driverChange, caller.id)
	if err != nil {
		return err
	}

	v, err := s.setVehicleStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newVehicleResponse(v))
}

// UpdateZone handles PUT /api/v1/zones/:id.
func (s *Server) UpdateZone(c echo.Context) error {
	caller, err := dispatcherFrom(c)
	if err != nil {
		return err
	}
	zoneID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateZoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := zone.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetZoneStatusCommand(zoneID, status, caller.id)
	if err != nil {
		return err
	}

	z, err := s.setZoneStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newZoneResponse(z))
}

// GetNotifications handles GET /api/v1/users/:id/notifications?limit=.
// Users read their own notifications; dispatchers read anyone's.
func (s *Server) GetNotifications(c echo.Context) error {
	caller, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if caller.id == nil || (!caller.id.IsEqual(userID) && !caller.role.CanDispatch()) {
		return errs.ErrUnauthorized
	}

	limit := defaultNotificationLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxNotificationLimit {
			return errs.NewValueIsOutOfRangeError("limit", raw, 1, maxNotificationLimit)
		}
	}

	notifications, err := s.notifications.ListNotifications(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}

	response := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = newNotificationResponse(n)
	}
	return c.JSON(http.StatusOK, response)
}
