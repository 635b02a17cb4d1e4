package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CommandHandler is satisfied by every command handler without a result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handler is satisfied by query handlers and by commands that return a value.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// CartService is the session cart of the calling customer.
type CartService interface {
	Get(ctx context.Context, actor profile.Actor) (*cart.Cart, error)
	AddItem(ctx context.Context, actor profile.Actor, productID kernel.UUID, quantity int) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, actor profile.Actor, productID kernel.UUID, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, actor profile.Actor, productID kernel.UUID) (*cart.Cart, error)
	Clear(ctx context.Context, actor profile.Actor) error
	Checkout(ctx context.Context, actor profile.Actor, orderID kernel.UUID, delivery *kernel.Location) error
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateRegion        CommandHandler[commands.CreateRegionCommand]
	SetRegionActive     CommandHandler[commands.SetRegionActiveCommand]
	AssignRole          CommandHandler[commands.AssignRoleCommand]
	DecideKYC           CommandHandler[commands.DecideKYCCommand]
	ProvisionCourier    Handler[commands.ProvisionCourierCommand, kernel.UUID]
	CreateProduct       CommandHandler[commands.CreateProductCommand]
	UpdateProduct       CommandHandler[commands.UpdateProductCommand]
	SetProductActive    CommandHandler[commands.SetProductActiveCommand]
	UploadProductImage  Handler[commands.UploadProductImageCommand, string]
	TransitionOrder     CommandHandler[commands.TransitionOrderCommand]
	CancelOrder         CommandHandler[commands.CancelOrderCommand]
	AssignCourier       CommandHandler[commands.AssignCourierCommand]
	UpdatePaymentStatus CommandHandler[commands.UpdatePaymentStatusCommand]

	// Query handlers
	ListRegions         Handler[queries.ListRegionsQuery, []queries.RegionView]
	GetProfile          Handler[queries.GetProfileQuery, queries.ProfileView]
	ListCatalog         Handler[queries.ListCatalogQuery, []queries.ProductView]
	GetOrder            Handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders          Handler[queries.ListOrdersQuery, []queries.OrderSummary]
	CountOrdersByStatus Handler[queries.CountOrdersByStatusQuery, []queries.StatusCount]

	Cart CartService
}

// Server maps HTTP requests onto use cases. Every route under /api/v1 runs
// with the actor resolved by the authenticator.
type Server struct {
	handlers Handlers
	auth     *Authenticator
	logger   *slog.Logger
}

func NewServer(handlers Handlers, auth *Authenticator, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		auth:     auth,
		logger:   logger.With("component", "http"),
	}
}

// Register installs the error handler, validator, middleware and routes.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = s.HandleError
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.auth.Middleware())

	api.GET("/regions", s.ListRegions)
	api.POST("/regions", s.CreateRegion)
	api.PATCH("/regions/:id/active", s.SetRegionActive)

	api.GET("/me", s.GetMe)
	api.PUT("/profiles/:id/role", s.AssignRole)
	api.POST("/profiles/:id/kyc", s.DecideKYC)
	api.POST("/couriers", s.ProvisionCourier)

	api.GET("/products", s.ListCatalog)
	api.POST("/products", s.CreateProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.PATCH("/products/:id/active", s.SetProductActive)
	api.POST("/products/:id/image", s.UploadProductImage, middleware.BodyLimit("6M"))

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/counts", s.CountOrdersByStatus)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PUT("/orders/:id/assignee", s.AssignCourier)
	api.PUT("/orders/:id/payment-status", s.UpdatePaymentStatus)

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PATCH("/cart/items/:productId", s.UpdateCartItem)
	api.DELETE("/cart/items/:productId", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/checkout", s.Checkout)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the request into req and applies its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

type createdResponse struct {
	ID kernel.UUID `json:"id"`
}
