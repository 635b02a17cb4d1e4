package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type createRegionRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Code string `json:"code" validate:"required,alphanum,max=16"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ListRegions handles GET /api/v1/regions.
func (s *Server) ListRegions(c echo.Context) error {
	regions, err := s.handlers.ListRegions.Handle(c.Request().Context(), queries.NewListRegionsQuery(actorFrom(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regions)
}

// CreateRegion handles POST /api/v1/regions.
func (s *Server) CreateRegion(c echo.Context) error {
	var req createRegionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	regionID := kernel.NewUUID()
	cmd, err := commands.NewCreateRegionCommand(actorFrom(c), regionID, req.Name, req.Code)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateRegion.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: regionID})
}

// SetRegionActive handles PATCH /api/v1/regions/:id/active.
func (s *Server) SetRegionActive(c echo.Context) error {
	regionID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req setActiveRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetRegionActiveCommand(actorFrom(c), regionID, *req.Active)
	if err != nil {
		return err
	}
	if err = s.handlers.SetRegionActive.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
