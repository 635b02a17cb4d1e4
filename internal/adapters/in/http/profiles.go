package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"

	"github.com/labstack/echo/v4"
)

type assignRoleRequest struct {
	Role      string `json:"role" validate:"required,oneof=customer admin logistics"`
	AdminRole string `json:"admin_role" validate:"omitempty,oneof=admin super_admin"`
	RegionID  string `json:"region_id" validate:"omitempty,uuid"`
}

type decideKYCRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Reason   string `json:"reason" validate:"max=500"`
}

type provisionCourierRequest struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RegionID string `json:"region_id" validate:"required,uuid"`
}

// GetMe handles GET /api/v1/me.
func (s *Server) GetMe(c echo.Context) error {
	view, err := s.handlers.GetProfile.Handle(c.Request().Context(), queries.NewGetProfileQuery(actorFrom(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// AssignRole handles PUT /api/v1/profiles/:id/role.
func (s *Server) AssignRole(c echo.Context) error {
	profileID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req assignRoleRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	role, err := profile.ParseRole(req.Role)
	if err != nil {
		return err
	}
	tier, err := profile.ParseAdminTier(req.AdminRole)
	if err != nil {
		return err
	}
	regionID, err := kernel.OptionalUUIDFromString(req.RegionID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignRoleCommand(actorFrom(c), profileID, role, tier, regionID)
	if err != nil {
		return err
	}
	if err = s.handlers.AssignRole.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DecideKYC handles POST /api/v1/profiles/:id/kyc.
func (s *Server) DecideKYC(c echo.Context) error {
	profileID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req decideKYCRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	decision, err := profile.ParseKYCStatus(req.Decision)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDecideKYCCommand(actorFrom(c), profileID, decision, req.Reason)
	if err != nil {
		return err
	}
	if err = s.handlers.DecideKYC.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ProvisionCourier handles POST /api/v1/couriers.
func (s *Server) ProvisionCourier(c echo.Context) error {
	var req provisionCourierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	regionID, err := kernel.UUIDFromString(req.RegionID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewProvisionCourierCommand(actorFrom(c), req.FullName, req.Email, req.Password, regionID)
	if err != nil {
		return err
	}

	courierID, err := s.handlers.ProvisionCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: courierID})
}
