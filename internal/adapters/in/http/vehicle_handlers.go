package http

import (
	"net/http"

	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// RegisterVehicleRequest is the body of POST /vehicles.
type RegisterVehicleRequest struct {
	OwnerID     string  `json:"ownerId"`
	Model       string  `json:"model"`
	PlateNumber string  `json:"plateNumber"`
	MaxWeightKg float64 `json:"maxWeightKg"`
	MaxVolume   float64 `json:"maxVolume"`
}

// VehicleCreatedResponse is the body returned on vehicle registration.
type VehicleCreatedResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Status      string `json:"status"`
	IsVerified  bool   `json:"isVerified"`
}

// RegisterVehicle handles POST /api/v1/vehicles - a carrier registers a
// truck. The vehicle starts idle and unverified; it cannot haul until
// verification links a payout account.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var req RegisterVehicleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "invalid owner id")
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewRegisterVehicleCommand(
		vehicleID, ownerID,
		req.Model, req.PlateNumber,
		req.MaxWeightKg, req.MaxVolume,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.registerVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	response := VehicleCreatedResponse{
		ID:          vehicleID.String(),
		PlateNumber: req.PlateNumber,
		Status:      "IDLE",
		IsVerified:  false,
	}
	s.saveSnapshot(ctx, ports.SnapshotKeyVehicle, response)

	return ctx.JSON(http.StatusCreated, response)
}

// CompleteVerificationRequest is the body of POST /vehicles/:vehicleID/verification.
type CompleteVerificationRequest struct {
	LinkedAccountID string `json:"linkedAccountId"`
}

// CompleteVerification handles POST /api/v1/vehicles/:vehicleID/verification -
// marks a vehicle verified and links the payout account escrow releases go to.
func (s *Server) CompleteVerification(ctx echo.Context) error {
	vehicleID, err := kernel.UUIDFromString(ctx.Param("vehicleID"))
	if err != nil {
		return badRequest(ctx, "invalid vehicle id")
	}

	var req CompleteVerificationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCompleteVerificationCommand(vehicleID, req.LinkedAccountID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.completeVerificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
