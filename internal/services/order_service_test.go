package services

import (
	"context"
	"errors"
	"testing"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra"
	"procurement-service/internal/mocks"
	"procurement-service/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderDeps struct {
	txm      *mocks.MockTransactionManager
	orders   *mocks.MockOrderRepository
	txOrders *mocks.MockOrderRepository
	products *mocks.MockProductRepository
	authz    *mocks.MockAuthorizer
	pub      *mocks.MockPublisher
}

func newOrderDeps() *orderDeps {
	d := &orderDeps{
		txm:      new(mocks.MockTransactionManager),
		orders:   new(mocks.MockOrderRepository),
		txOrders: new(mocks.MockOrderRepository),
		products: new(mocks.MockProductRepository),
		authz:    new(mocks.MockAuthorizer),
		pub:      new(mocks.MockPublisher),
	}
	d.txm.Repos = &mocks.MockRepositories{ProductRepo: d.products, OrderRepo: d.txOrders}
	return d
}

func (d *orderDeps) assertExpectations(t *testing.T) {
	d.txm.AssertExpectations(t)
	d.orders.AssertExpectations(t)
	d.txOrders.AssertExpectations(t)
	d.products.AssertExpectations(t)
	d.authz.AssertExpectations(t)
	d.pub.AssertExpectations(t)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	product := &domain.Product{ID: 1, VendorID: 7, Name: "Laptop", Price: dec("10"), Cost: dec("6"), Stock: 3}
	placeReq := policy.Request{Action: policy.ActionPlaceOrder, OwnerID: 3}

	tests := []struct {
		name          string
		input         PlaceOrderInput
		setupMocks    func(d *orderDeps)
		expectedError error
	}{
		{
			name:  "successful order",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 2},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(nil)
				d.txm.On("WithTransaction", mock.Anything).Return(nil)
				d.products.On("DecrementStock", mock.Anything, uint64(1), int64(2)).Return(true, nil)
				d.products.On("FindByID", mock.Anything, uint64(1)).Return(product, nil)
				d.txOrders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).ID = 42
				})
				d.txOrders.On("CreateItem", mock.Anything, mock.MatchedBy(func(item *domain.OrderItem) bool {
					return item.OrderID == 42 && item.ProductID == 1 && item.Quantity == 2 && item.Price.Equal(dec("10"))
				})).Return(nil)
				d.pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.AnythingOfType("domain.OrderPlacedEvent")).Return(nil)
			},
		},
		{
			name:  "insufficient stock",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 5},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(nil)
				d.txm.On("WithTransaction", mock.Anything).Return(nil)
				d.products.On("DecrementStock", mock.Anything, uint64(1), int64(5)).Return(false, nil)
				d.products.On("FindByID", mock.Anything, uint64(1)).Return(product, nil)
			},
			expectedError: domain.ErrInsufficientStock,
		},
		{
			name:  "unknown product",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 9, Quantity: 1},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(nil)
				d.txm.On("WithTransaction", mock.Anything).Return(nil)
				d.products.On("DecrementStock", mock.Anything, uint64(9), int64(1)).Return(false, nil)
				d.products.On("FindByID", mock.Anything, uint64(9)).Return(nil, nil)
			},
			expectedError: domain.ErrProductNotFound,
		},
		{
			name:          "zero quantity",
			input:         PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 0},
			setupMocks:    func(d *orderDeps) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "missing employee",
			input:         PlaceOrderInput{ProductID: 1, Quantity: 1},
			setupMocks:    func(d *orderDeps) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "caller is not the employee",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 1},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(domain.ErrForbidden)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:  "order insert fails",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 1},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(nil)
				d.txm.On("WithTransaction", mock.Anything).Return(nil)
				d.products.On("DecrementStock", mock.Anything, uint64(1), int64(1)).Return(true, nil)
				d.products.On("FindByID", mock.Anything, uint64(1)).Return(product, nil)
				d.txOrders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("connection reset"))
			},
			expectedError: domain.ErrStore,
		},
		{
			name:  "transaction cannot start",
			input: PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 1},
			setupMocks: func(d *orderDeps) {
				d.authz.On("Authorize", mock.Anything, placeReq).Return(nil)
				d.txm.On("WithTransaction", mock.Anything).Return(errors.New("begin transaction: too many connections"))
			},
			expectedError: domain.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newOrderDeps()
			tt.setupMocks(d)

			events := newTestEvents(d.pub)
			service := NewOrderService(d.txm, d.orders, d.authz, nil, events, discardLogger())

			result, err := service.PlaceOrder(context.Background(), tt.input)
			events.Wait()

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(42), result.OrderID)
				assert.Equal(t, uint64(7), result.VendorID)
				assert.True(t, result.TotalAmount.Equal(dec("20")), "total %s", result.TotalAmount)
				assert.True(t, result.UnitPrice.Equal(dec("10")))
			}

			d.assertExpectations(t)
		})
	}
}

func TestOrderService_PlaceOrderInvalidatesCatalogCache(t *testing.T) {
	d := newOrderDeps()
	cache := new(mocks.MockCache)

	d.authz.On("Authorize", mock.Anything, mock.Anything).Return(nil)
	d.txm.On("WithTransaction", mock.Anything).Return(nil)
	d.products.On("DecrementStock", mock.Anything, uint64(1), int64(1)).Return(true, nil)
	d.products.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Product{ID: 1, VendorID: 7, Price: dec("2.50")}, nil)
	d.txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.txOrders.On("CreateItem", mock.Anything, mock.Anything).Return(nil)
	d.pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(nil)
	cache.On("Delete", mock.Anything, []string{"products:all", "products:vendor:7"}).Return(nil)

	events := newTestEvents(d.pub)
	service := NewOrderService(d.txm, d.orders, d.authz, cache, events, discardLogger())

	result, err := service.PlaceOrder(context.Background(), PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 1})
	events.Wait()

	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(dec("2.5")))
	cache.AssertExpectations(t)
	d.assertExpectations(t)
}

func TestOrderService_PlaceOrderSurvivesPublishFailure(t *testing.T) {
	d := newOrderDeps()

	d.authz.On("Authorize", mock.Anything, mock.Anything).Return(nil)
	d.txm.On("WithTransaction", mock.Anything).Return(nil)
	d.products.On("DecrementStock", mock.Anything, uint64(1), int64(1)).Return(true, nil)
	d.products.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Product{ID: 1, VendorID: 7, Price: dec("1")}, nil)
	d.txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.txOrders.On("CreateItem", mock.Anything, mock.Anything).Return(nil)
	d.pub.On("Publish", mock.Anything, domain.EventOrderPlaced, mock.Anything).Return(errors.New("broker gone"))

	events := newTestEvents(d.pub)
	service := NewOrderService(d.txm, d.orders, d.authz, infra.Cache(nil), events, discardLogger())

	_, err := service.PlaceOrder(context.Background(), PlaceOrderInput{EmployeeID: 3, ProductID: 1, Quantity: 1})
	events.Wait()

	assert.NoError(t, err)
	d.assertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	order := &domain.Order{ID: 5, EmployeeID: 3, VendorID: 7, Status: domain.StatusPending}
	updateReq := policy.Request{Action: policy.ActionUpdateOrderStatus, OwnerID: 7}

	tests := []struct {
		name          string
		input         UpdateOrderStatusInput
		setupMocks    func(d *orderDeps)
		expectedError error
	}{
		{
			name:  "vendor ships order",
			input: UpdateOrderStatusInput{OrderID: 5, Status: domain.StatusShipped},
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(5)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, updateReq).Return(nil)
				d.orders.On("UpdateStatus", mock.Anything, uint64(5), domain.StatusShipped).Return(true, nil)
				d.pub.On("Publish", mock.Anything, domain.EventOrderStatusUpdated, domain.OrderStatusUpdatedEvent{
					OrderID: 5, VendorID: 7, Status: domain.StatusShipped,
				}).Return(nil)
			},
		},
		{
			name:  "custom status is accepted",
			input: UpdateOrderStatusInput{OrderID: 5, Status: "Awaiting pickup"},
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(5)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, updateReq).Return(nil)
				d.orders.On("UpdateStatus", mock.Anything, uint64(5), domain.OrderStatus("Awaiting pickup")).Return(true, nil)
				d.pub.On("Publish", mock.Anything, domain.EventOrderStatusUpdated, mock.Anything).Return(nil)
			},
		},
		{
			name:  "unknown order",
			input: UpdateOrderStatusInput{OrderID: 99, Status: domain.StatusShipped},
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)
			},
			expectedError: domain.ErrOrderNotFound,
		},
		{
			name:  "other vendor",
			input: UpdateOrderStatusInput{OrderID: 5, Status: domain.StatusShipped},
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(5)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, updateReq).Return(domain.ErrForbidden)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:          "empty status",
			input:         UpdateOrderStatusInput{OrderID: 5},
			setupMocks:    func(d *orderDeps) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "order deleted concurrently",
			input: UpdateOrderStatusInput{OrderID: 5, Status: domain.StatusDelivered},
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(5)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, updateReq).Return(nil)
				d.orders.On("UpdateStatus", mock.Anything, uint64(5), domain.StatusDelivered).Return(false, nil)
			},
			expectedError: domain.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newOrderDeps()
			tt.setupMocks(d)

			events := newTestEvents(d.pub)
			service := NewOrderService(d.txm, d.orders, d.authz, nil, events, discardLogger())

			err := service.UpdateOrderStatus(context.Background(), tt.input)
			events.Wait()

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			d.assertExpectations(t)
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	order := &domain.Order{ID: 1, EmployeeID: 3, VendorID: 7, Status: domain.StatusPending}
	asEmployee := policy.Request{Action: policy.ActionViewOrders, OwnerID: 3}
	asVendor := policy.Request{Action: policy.ActionViewOrders, OwnerID: 7}

	tests := []struct {
		name          string
		id            uint64
		setupMocks    func(*orderDeps)
		expectedError error
	}{
		{
			name: "employee reads own order",
			id:   1,
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(1)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, asEmployee).Return(nil)
			},
		},
		{
			name: "vendor reads received order",
			id:   1,
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(1)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, asEmployee).Return(domain.ErrForbidden)
				d.authz.On("Authorize", mock.Anything, asVendor).Return(nil)
			},
		},
		{
			name: "outsider is rejected",
			id:   1,
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(1)).Return(order, nil)
				d.authz.On("Authorize", mock.Anything, asEmployee).Return(domain.ErrForbidden)
				d.authz.On("Authorize", mock.Anything, asVendor).Return(domain.ErrForbidden)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name: "not found",
			id:   999,
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)
			},
			expectedError: domain.ErrOrderNotFound,
		},
		{
			name: "repository error",
			id:   1,
			setupMocks: func(d *orderDeps) {
				d.orders.On("FindByID", mock.Anything, uint64(1)).Return(nil, errors.New("database connection error"))
			},
			expectedError: domain.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newOrderDeps()
			tt.setupMocks(d)

			service := NewOrderService(d.txm, d.orders, d.authz, nil, newTestEvents(d.pub), discardLogger())
			result, err := service.GetOrder(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, result.ID)
			}
			d.assertExpectations(t)
		})
	}
}
