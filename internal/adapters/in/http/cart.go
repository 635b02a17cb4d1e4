package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type cartLineView struct {
	ProductID        kernel.UUID     `json:"product_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	PricePerQuantity int             `json:"price_per_quantity"`
	Unit             string          `json:"unit"`
	Quantity         int             `json:"quantity"`
	RegionID         kernel.UUID     `json:"region_id"`
	Total            decimal.Decimal `json:"total"`
}

type cartView struct {
	Items     []cartLineView  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

func newCartView(c *cart.Cart) cartView {
	lines := c.Lines()
	view := cartView{
		Items:     make([]cartLineView, 0, len(lines)),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
	for _, line := range lines {
		view.Items = append(view.Items, cartLineView{
			ProductID:        line.ProductID,
			Name:             line.Name,
			Price:            line.Price,
			PricePerQuantity: line.PricePerQuantity,
			Unit:             line.Unit,
			Quantity:         line.Quantity,
			RegionID:         line.RegionID,
			Total:            line.Total(),
		})
	}
	return view
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type deliveryRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

type checkoutRequest struct {
	Delivery *deliveryRequest `json:"delivery"`
}

type checkoutResponse struct {
	OrderID kernel.UUID `json:"order_id"`
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	current, err := s.handlers.Cart.Get(c.Request().Context(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartView(current))
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return err
	}

	updated, err := s.handlers.Cart.AddItem(c.Request().Context(), actorFrom(c), productID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartView(updated))
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:productId. A quantity of
// zero removes the line.
func (s *Server) UpdateCartItem(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}
	var req updateCartItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.handlers.Cart.UpdateQuantity(c.Request().Context(), actorFrom(c), productID, *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartView(updated))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	updated, err := s.handlers.Cart.RemoveItem(c.Request().Context(), actorFrom(c), productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartView(updated))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	if err := s.handlers.Cart.Clear(c.Request().Context(), actorFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/cart/checkout. The body is optional.
func (s *Server) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var delivery *kernel.Location
	if req.Delivery != nil {
		loc, err := kernel.NewLocation(*req.Delivery.Lat, *req.Delivery.Lng)
		if err != nil {
			return err
		}
		delivery = &loc
	}

	orderID := kernel.NewUUID()
	if err := s.handlers.Cart.Checkout(c.Request().Context(), actorFrom(c), orderID, delivery); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, checkoutResponse{OrderID: orderID})
}
