package http

import (
	"errors"
	"net/http"

	"neuroload/internal/core/domain/model/account"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// RegisterUserRequest is the body of POST /users.
type RegisterUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UserResponse is the onboarded user, also stored as the session snapshot.
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// RegisterUser handles POST /api/v1/users - onboards a marketplace user and
// stores them as the current session user.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterUserRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	role, err := account.RoleFromString(req.Role)
	if err != nil {
		return s.fail(ctx, err)
	}

	user, err := account.NewUser(kernel.NewUUID(), req.Name, role)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := UserResponse{
		ID:   user.ID().String(),
		Name: user.Name(),
		Role: user.Role().String(),
	}
	s.saveSnapshot(ctx, ports.SnapshotKeyUser, response)

	return ctx.JSON(http.StatusCreated, response)
}

func snapshotSlot(raw string) (ports.SnapshotKey, bool) {
	switch ports.SnapshotKey(raw) {
	case ports.SnapshotKeyUser, ports.SnapshotKeyVehicle, ports.SnapshotKeyOrder:
		return ports.SnapshotKey(raw), true
	default:
		return "", false
	}
}

// GetSessionSnapshot handles GET /api/v1/session/:slot - returns the stored
// snapshot for the slot (user, vehicle or order).
func (s *Server) GetSessionSnapshot(ctx echo.Context) error {
	slot, ok := snapshotSlot(ctx.Param("slot"))
	if !ok {
		return badRequest(ctx, "unknown session slot")
	}

	payload, err := s.stateStore.LoadSnapshot(ctx.Request().Context(), slot)
	if errors.Is(err, ports.ErrSnapshotNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "no snapshot stored for slot " + string(slot),
		})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSONBlob(http.StatusOK, payload)
}

// ClearSessionSnapshot handles DELETE /api/v1/session/:slot.
func (s *Server) ClearSessionSnapshot(ctx echo.Context) error {
	slot, ok := snapshotSlot(ctx.Param("slot"))
	if !ok {
		return badRequest(ctx, "unknown session slot")
	}

	if err := s.stateStore.ClearSnapshot(ctx.Request().Context(), slot); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
