package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/model/region"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	now   = time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)
	clock = kernel.FixedClock{At: now}
)

type MockRegionRepository struct{ mock.Mock }

func (m *MockRegionRepository) Add(ctx context.Context, r *region.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Update(ctx context.Context, r *region.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Get(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*region.Region)
	return r, args.Error(1)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Add(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*profile.Profile)
	return p, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*product.Product)
	return products, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) CountActiveByAssignee(ctx context.Context, courierID kernel.UUID) (int64, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW records transaction calls; repositories are handed out as is.
type MockUoW struct {
	mock.Mock
	regions  *MockRegionRepository
	profiles *MockProfileRepository
	products *MockProductRepository
	orders   *MockOrderRepository
}

func newMockUoW() *MockUoW {
	uow := &MockUoW{
		regions:  new(MockRegionRepository),
		profiles: new(MockProfileRepository),
		products: new(MockProductRepository),
		orders:   new(MockOrderRepository),
	}
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

func (m *MockUoW) expectBegin() {
	m.On("Begin", mock.Anything).Return(nil).Once()
}

func (m *MockUoW) expectCommit() {
	m.On("Commit", mock.Anything).Return(nil).Once()
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) RegionRepository() ports.RegionRepository {
	return m.regions
}

func (m *MockUoW) ProfileRepository() ports.ProfileRepository {
	return m.profiles
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.products
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) assertExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.regions.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.orders.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) regions() regionFactory {
	return regionFactory(f)
}

func (f uowFactory) profiles() profileFactory {
	return profileFactory(f)
}

func (f uowFactory) catalog() catalogFactory {
	return catalogFactory(f)
}

func (f uowFactory) orders() orderFactory {
	return orderFactory(f)
}

func (f uowFactory) checkout() checkoutFactory {
	return checkoutFactory(f)
}

type regionFactory struct{ uow *MockUoW }

func (f regionFactory) Create() commands.RegionUoW {
	return f.uow
}

type profileFactory struct{ uow *MockUoW }

func (f profileFactory) Create() commands.ProfileUoW {
	return f.uow
}

type catalogFactory struct{ uow *MockUoW }

func (f catalogFactory) Create() commands.CatalogUoW {
	return f.uow
}

type orderFactory struct{ uow *MockUoW }

func (f orderFactory) Create() commands.OrderUoW {
	return f.uow
}

type checkoutFactory struct{ uow *MockUoW }

func (f checkoutFactory) Create() commands.CheckoutUoW {
	return f.uow
}

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, email, password string) (kernel.UUID, error) {
	args := m.Called(ctx, email, password)
	id, _ := args.Get(0).(kernel.UUID)
	return id, args.Error(1)
}

func (m *MockIdentityProvider) DeleteIdentity(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockObjectStorage struct{ mock.Mock }

func (m *MockObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type MockCartStorage struct{ mock.Mock }

func (m *MockCartStorage) Load(ctx context.Context, userID kernel.UUID) ([]cart.Line, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]cart.Line)
	return lines, args.Error(1)
}

func (m *MockCartStorage) Save(ctx context.Context, userID kernel.UUID, lines []cart.Line) error {
	return m.Called(ctx, userID, lines).Error(0)
}

func (m *MockCartStorage) Delete(ctx context.Context, userID kernel.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockOrderPlacer struct{ mock.Mock }

func (m *MockOrderPlacer) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}
