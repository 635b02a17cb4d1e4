package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/blobstore"
	"fulfillment/internal/adapters/out/cartstore"
	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infrastructure holds the connections opened by main. The composition root
// only wires them; closing them stays with the caller.
type Infrastructure struct {
	DB        *gorm.DB
	Redis     redis.UniversalClient
	Images    *blobstore.BucketStorage
	Publisher ports.EventPublisher
	Metrics   *metrics.Metrics
}

type CompositionRoot struct {
	cfg        Config
	infra      Infrastructure
	logger     *slog.Logger
	policy     services.AccessPolicy
	clock      kernel.Clock
	uowFactory ports.UnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, infra Infrastructure, logger *slog.Logger) CompositionRoot {
	publisher := metrics.NewCountingPublisher(infra.Publisher, infra.Metrics)
	return CompositionRoot{
		cfg:        cfg,
		infra:      infra,
		logger:     logger,
		policy:     services.NewAccessPolicy(),
		clock:      kernel.SystemClock(),
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.DB, publisher, cfg.Store.OperationTimeout, logger),
	}
}

func (c *CompositionRoot) regionUoWFactory() commands.RegionUoWFactory {
	return FuncRegionUoWFactory(func() commands.RegionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) profileUoWFactory() commands.ProfileUoWFactory {
	return FuncProfileUoWFactory(func() commands.ProfileUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCartAccumulator() *commands.CartAccumulator {
	storage := cartstore.NewRedisCartStorage(c.infra.Redis, c.cfg.Redis.CartTTL)
	placer := commands.NewPlaceOrderCommandHandler(c.checkoutUoWFactory(), c.policy, c.clock)
	return commands.NewCartAccumulator(storage, c.catalogUoWFactory(), placer, c.policy, c.logger)
}

// CreateHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	identityProvider := identity.NewAdminClient(
		c.cfg.Identity.BaseURL, c.cfg.Identity.ServiceKey, c.cfg.Identity.Timeout,
	)
	readTimeout := c.cfg.Store.OperationTimeout

	return httpin.Handlers{
		CreateRegion:    commands.NewCreateRegionCommandHandler(c.regionUoWFactory(), c.policy),
		SetRegionActive: commands.NewSetRegionActiveCommandHandler(c.regionUoWFactory(), c.policy),
		AssignRole:      commands.NewAssignRoleCommandHandler(c.profileUoWFactory(), c.policy, c.clock),
		DecideKYC:       commands.NewDecideKYCCommandHandler(c.profileUoWFactory(), c.policy, c.clock),
		ProvisionCourier: commands.NewProvisionCourierCommandHandler(
			c.profileUoWFactory(), identityProvider, c.policy, c.clock,
		),
		CreateProduct:    commands.NewCreateProductCommandHandler(c.catalogUoWFactory(), c.policy, c.clock),
		UpdateProduct:    commands.NewUpdateProductCommandHandler(c.catalogUoWFactory(), c.policy, c.clock),
		SetProductActive: commands.NewSetProductActiveCommandHandler(c.catalogUoWFactory(), c.policy, c.clock),
		UploadProductImage: commands.NewUploadProductImageCommandHandler(
			c.catalogUoWFactory(), c.infra.Images, c.policy, c.clock,
		),
		TransitionOrder:     commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.policy, c.clock),
		CancelOrder:         commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.policy, c.clock),
		AssignCourier:       commands.NewAssignCourierCommandHandler(c.orderUoWFactory(), c.policy, c.clock),
		UpdatePaymentStatus: commands.NewUpdatePaymentStatusCommandHandler(c.orderUoWFactory(), c.policy, c.clock),

		ListRegions:         queries.NewListRegionsQueryHandler(c.infra.DB, c.policy, readTimeout),
		GetProfile:          queries.NewGetProfileQueryHandler(c.infra.DB, readTimeout),
		ListCatalog:         queries.NewListCatalogQueryHandler(c.infra.DB, c.policy, readTimeout),
		GetOrder:            queries.NewGetOrderQueryHandler(c.infra.DB, c.policy, readTimeout),
		ListOrders:          queries.NewListOrdersQueryHandler(c.infra.DB, c.policy, readTimeout),
		CountOrdersByStatus: queries.NewCountOrdersByStatusQueryHandler(c.infra.DB, c.policy, readTimeout),

		Cart: c.CreateCartAccumulator(),
	}
}

func (c *CompositionRoot) CreateAuthenticator() *httpin.Authenticator {
	verifier := identity.NewJWTVerifier(c.cfg.Auth.JWTSecret, c.cfg.Auth.Issuer)
	return httpin.NewAuthenticator(verifier, httpin.NewProfileActorLoader(c.uowFactory))
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateHandlers(), c.CreateAuthenticator(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	gaugeJob := jobs.NewOrderStatusGaugeJob(
		queries.NewGetOrderStatusTotalsQueryHandler(c.infra.DB, c.cfg.Store.OperationTimeout),
		c.infra.Metrics,
		c.cfg.Jobs.GaugeSchedule,
		c.logger,
	)
	return jobs.NewJobManager(gaugeJob)
}

type FuncRegionUoWFactory func() commands.RegionUoW

func (f FuncRegionUoWFactory) Create() commands.RegionUoW {
	return f()
}

type FuncProfileUoWFactory func() commands.ProfileUoW

func (f FuncProfileUoWFactory) Create() commands.ProfileUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
