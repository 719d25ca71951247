package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bistro/internal/core/application/usecases/commands"
	"bistro/internal/core/domain/model/kernel"
)

type recordDriverFixRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecordDriverFix handles POST /api/v1/drivers/:id/location.
func (s *Server) RecordDriverFix(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid driver id")
	}

	var request recordDriverFixRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	command, err := commands.NewRecordDriverFixCommand(driverID, request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.recordDriverFixHandler.Handle(ctx.Request().Context(), command); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
