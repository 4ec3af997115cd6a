package mocks

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra/auth"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockProductRepository struct {
	mock.Mock
}

type MockUserRepository struct {
	mock.Mock
}

type MockReportRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

type MockAuthorizer struct {
	mock.Mock
}

type MockPasswordHasher struct {
	mock.Mock
}

type MockTokenService struct {
	mock.Mock
}

// MockTransactionManager runs the callback against Repos unless the
// expectation returns an error, in which case the callback is skipped.
type MockTransactionManager struct {
	mock.Mock
	Repos repository.Repositories
}

// MockRepositories hands out fixed repositories to a transaction callback.
type MockRepositories struct {
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
}

func (r *MockRepositories) Products() repository.ProductRepository { return r.ProductRepo }
func (r *MockRepositories) Orders() repository.OrderRepository     { return r.OrderRepo }

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Repos)
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockAuthorizer) Authorize(ctx context.Context, req policy.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

func (m *MockTokenService) Issue(userID uint64, role domain.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByVendorAndName(ctx context.Context, vendorID uint64, name string) (*domain.Product, error) {
	args := m.Called(ctx, vendorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListByVendor(ctx context.Context, vendorID uint64) ([]domain.Product, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Restock(ctx context.Context, id uint64, qty int64, price, cost decimal.Decimal) error {
	args := m.Called(ctx, id, qty, price, cost)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetStatus(ctx context.Context, id uint64, status domain.UserStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) VendorOrders(ctx context.Context, vendorID uint64) ([]domain.VendorOrderRow, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorOrderRow), args.Error(1)
}

func (m *MockReportRepository) EmployeeOrders(ctx context.Context, employeeID uint64) ([]domain.EmployeeOrderRow, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeOrderRow), args.Error(1)
}

func (m *MockReportRepository) CountUsers(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) DeliveredRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportRepository) DeliveredProfit(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var (
	_ repository.OrderRepository    = (*MockOrderRepository)(nil)
	_ repository.ProductRepository  = (*MockProductRepository)(nil)
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.ReportRepository   = (*MockReportRepository)(nil)
	_ repository.TransactionManager = (*MockTransactionManager)(nil)
	_ repository.Repositories       = (*MockRepositories)(nil)
	_ policy.Authorizer             = (*MockAuthorizer)(nil)
)
