package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type assigneeRequest struct {
	CourierID *string `json:"courier_id" validate:"omitempty,uuid"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// statusFilter accepts both ?status=a&status=b and ?status=a,b.
func statusFilter(c echo.Context) ([]order.Status, error) {
	var names []string
	for _, raw := range c.QueryParams()["status"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return order.ParseStatuses(names)
}

// ListOrders handles GET /api/v1/orders?region_id=&status=&limit=&offset=.
func (s *Server) ListOrders(c echo.Context) error {
	regionID, err := kernel.OptionalUUIDFromString(c.QueryParam("region_id"))
	if err != nil {
		return err
	}
	statuses, err := statusFilter(c)
	if err != nil {
		return err
	}
	var limit, offset int
	if err = echo.QueryParamsBinder(c).Int("limit", &limit).Int("offset", &offset).BindError(); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actorFrom(c), regionID, statuses, limit, offset)
	if err != nil {
		return err
	}
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// CountOrdersByStatus handles GET /api/v1/orders/counts?region_id=&status=.
func (s *Server) CountOrdersByStatus(c echo.Context) error {
	regionID, err := kernel.OptionalUUIDFromString(c.QueryParam("region_id"))
	if err != nil {
		return err
	}
	statuses, err := statusFilter(c)
	if err != nil {
		return err
	}

	query, err := queries.NewCountOrdersByStatusQuery(actorFrom(c), regionID, statuses)
	if err != nil {
		return err
	}
	counts, err := s.handlers.CountOrdersByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	return s.renderOrder(c, orderID)
}

// renderOrder responds with the current view of the order, the same body
// GET /api/v1/orders/:id returns. Mutating routes use it after their command
// committed.
func (s *Server) renderOrder(c echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req transitionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(actorFrom(c), orderID, req.Status)
	if err != nil {
		return err
	}
	if err = s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderOrder(c, orderID)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderOrder(c, orderID)
}

// AssignCourier handles PUT /api/v1/orders/:id/assignee. A null courier_id
// removes the assignment.
func (s *Server) AssignCourier(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req assigneeRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	var courierID *kernel.UUID
	if req.CourierID != nil {
		if courierID, err = kernel.OptionalUUIDFromString(*req.CourierID); err != nil {
			return err
		}
	}
	cmd, err := commands.NewAssignCourierCommand(actorFrom(c), orderID, courierID)
	if err != nil {
		return err
	}
	if err = s.handlers.AssignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderOrder(c, orderID)
}

// UpdatePaymentStatus handles PUT /api/v1/orders/:id/payment-status.
func (s *Server) UpdatePaymentStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req paymentStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(actorFrom(c), orderID, req.PaymentStatus)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdatePaymentStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderOrder(c, orderID)
}
