package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func bindAndValidate(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return &ValidationError{Fields: map[string]string{"body": "invalid request body"}}
	}
	return c.Validate(dest)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateShipment handles POST /api/v1/shipments. The caller becomes the sender.
func (s *Server) CreateShipment(c echo.Context) error {
	caller, err := actorFrom(c)
	if err != nil {
		return err
	}
	if caller.id == nil {
		return errs.NewValueIsRequiredError(HeaderActorID)
	}

	var req createShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pickup, err := req.Pickup.toEndpoint()
	if err != nil {
		return err
	}
	drop, err := req.Drop.toEndpoint()
	if err != nil {
		return err
	}
	load, err := kernel.NewLoadFromFloat(req.WeightKg, req.VolumeM3)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), *caller.id, pickup, drop, load, req.Description)
	if err != nil {
		return err
	}

	created, err := s.createShipmentHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdShipmentResponse{
		ID:             created.ID().String(),
		TrackingNumber: created.TrackingNumber(),
		Status:         created.Status().String(),
		CreatedAt:      created.Milestones().CreatedAt,
	})
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return err
	}
	return s.respondShipment(c, query)
}

// TrackShipment handles GET /api/v1/shipments/track/:tracking_number.
func (s *Server) TrackShipment(c echo.Context) error {
	query, err := queries.NewGetShipmentByTrackingNumberQuery(c.Param("tracking_number"))
	if err != nil {
		return err
	}
	return s.respondShipment(c, query)
}

func (s *Server) respondShipment(c echo.Context, query queries.GetShipmentQuery) error {
	view, err := s.getShipmentHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newShipmentResponse(view))
}

// DispatchShipment handles POST /api/v1/shipments/:id/dispatch.
// The body is optional; vehicle_id and driver_id override the search.
func (s *Server) DispatchShipment(c echo.Context) error {
	caller, err := dispatcherFrom(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dispatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	vehicleID, err := optionalUUID(req.VehicleID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("vehicle_id", err)
	}
	driverID, err := optionalUUID(req.DriverID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver_id", err)
	}

	cmd, err := commands.NewDispatchShipmentCommand(shipmentID, vehicleID, driverID, caller.id)
	if err != nil {
		return err
	}

	assigned, err := s.dispatchHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(assigned))
}

// AssignShipment handles POST /api/v1/shipments/:id/assign.
func (s *Server) AssignShipment(c echo.Context) error {
	caller, err := dispatcherFrom(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req assignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	vehicleID, vehicleErr := kernel.UUIDFromString(req.VehicleID)
	driverID, driverErr := kernel.UUIDFromString(req.DriverID)
	if err := errors.Join(vehicleErr, driverErr); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignment", err)
	}

	cmd, err := commands.NewManualAssignCommand(shipmentID, vehicleID, driverID, caller.id)
	if err != nil {
		return err
	}

	assigned, err := s.manualAssignHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAssignmentResponse(assigned))
}

// AdvanceStatus handles POST /api/v1/shipments/:id/status.
func (s *Server) AdvanceStatus(c echo.Context) error {
	caller, err := actorFrom(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req advanceStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	target, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceStatusCommand(shipmentID, target, caller.id, req.Note, req.Receipt.toReceipt())
	if err != nil {
		return err
	}

	updated, err := s.advanceStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStatusResponse(updated))
}

// ReleaseVehicle handles POST /api/v1/shipments/:id/release.
func (s *Server) ReleaseVehicle(c echo.Context) error {
	if _, err := dispatcherFrom(c); err != nil {
		return err
	}
	shipmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewReleaseVehicleCommand(shipmentID)
	if err != nil {
		return err
	}

	released, err := s.releaseVehicleHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, releaseResponse{Released: released})
}
