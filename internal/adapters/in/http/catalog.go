package http

import (
	"io"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type productDetailsRequest struct {
	Name             string          `json:"name" validate:"required,max=200"`
	Price            decimal.Decimal `json:"price"`
	PricePerQuantity int             `json:"price_per_quantity" validate:"required,min=1"`
	Unit             string          `json:"unit" validate:"required,max=32"`
}

func (r productDetailsRequest) details() product.Details {
	return product.Details{
		Name:             r.Name,
		Price:            r.Price,
		PricePerQuantity: r.PricePerQuantity,
		Unit:             r.Unit,
	}
}

type createProductRequest struct {
	RegionID string `json:"region_id" validate:"required,uuid"`
	productDetailsRequest
}

type imageResponse struct {
	URL string `json:"url"`
}

// ListCatalog handles GET /api/v1/products?region_id=.
func (s *Server) ListCatalog(c echo.Context) error {
	regionID, err := kernel.OptionalUUIDFromString(c.QueryParam("region_id"))
	if err != nil {
		return err
	}

	products, err := s.handlers.ListCatalog.Handle(c.Request().Context(),
		queries.NewListCatalogQuery(actorFrom(c), regionID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	regionID, err := kernel.UUIDFromString(req.RegionID)
	if err != nil {
		return err
	}
	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(actorFrom(c), productID, regionID, req.details())
	if err != nil {
		return err
	}
	if err = s.handlers.CreateProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: productID})
}

// UpdateProduct handles PUT /api/v1/products/:id.
func (s *Server) UpdateProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req productDetailsRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateProductCommand(actorFrom(c), productID, req.details())
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetProductActive handles PATCH /api/v1/products/:id/active.
func (s *Server) SetProductActive(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req setActiveRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetProductActiveCommand(actorFrom(c), productID, *req.Active)
	if err != nil {
		return err
	}
	if err = s.handlers.SetProductActive.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProductImage handles POST /api/v1/products/:id/image with a
// multipart "image" file.
func (s *Server) UploadProductImage(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("image", err)
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, commands.MaxImageSize+1))
	if err != nil {
		return err
	}
	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}

	cmd, err := commands.NewUploadProductImageCommand(actorFrom(c), productID, contentType, data)
	if err != nil {
		return err
	}
	url, err := s.handlers.UploadProductImage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imageResponse{URL: url})
}
