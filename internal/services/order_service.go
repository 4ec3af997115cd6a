package services

import (
	"context"
	"log/slog"
	"time"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderService struct {
	txm     repository.TransactionManager
	orders  repository.OrderRepository
	authz   policy.Authorizer
	catalog *catalogCache
	events  *Events
	logger  *slog.Logger
}

func NewOrderService(
	txm repository.TransactionManager,
	orders repository.OrderRepository,
	authz policy.Authorizer,
	cache infra.Cache,
	events *Events,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		txm:     txm,
		orders:  orders,
		authz:   authz,
		catalog: newCatalogCache(cache, logger),
		events:  events,
		logger:  logger,
	}
}

type PlaceOrderInput struct {
	EmployeeID uint64 `json:"employeeId" validate:"required"`
	ProductID  uint64 `json:"productId" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"gt=0"`
}

type PlacedOrder struct {
	OrderID     uint64          `json:"orderId"`
	VendorID    uint64          `json:"vendorId"`
	ProductID   uint64          `json:"productId"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PlaceOrder reserves stock and records a single-item order in one
// transaction. The stock decrement is conditional on enough units being
// left, so concurrent orders against the same product can never oversell:
// whichever transaction updates the row second sees the reduced stock.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlacedOrder, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionPlaceOrder, OwnerID: in.EmployeeID}); err != nil {
		return nil, err
	}

	var placed *PlacedOrder
	err := s.txm.WithTransaction(ctx, func(repos repository.Repositories) error {
		products := repos.Products()

		ok, err := products.DecrementStock(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			p, err := products.FindByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
			return domain.ErrInsufficientStock
		}

		// The row is locked by the update above, so price and vendor are
		// consistent with the stock we just took.
		p, err := products.FindByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}

		item := domain.OrderItem{
			ProductID: p.ID,
			Quantity:  in.Quantity,
			Price:     p.Price,
		}
		order := &domain.Order{
			EmployeeID:  in.EmployeeID,
			VendorID:    p.VendorID,
			TotalAmount: item.LineTotal(),
			Status:      domain.StatusPending,
		}
		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}

		item.OrderID = order.ID
		if err := repos.Orders().CreateItem(ctx, &item); err != nil {
			return err
		}

		placed = &PlacedOrder{
			OrderID:     order.ID,
			VendorID:    order.VendorID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.catalog.invalidate(ctx, placed.VendorID)
	s.events.dispatch(domain.EventOrderPlaced, domain.OrderPlacedEvent{
		OrderID:     placed.OrderID,
		EmployeeID:  in.EmployeeID,
		VendorID:    placed.VendorID,
		ProductID:   placed.ProductID,
		Quantity:    placed.Quantity,
		TotalAmount: placed.TotalAmount,
		CreatedAt:   placed.CreatedAt,
	})

	s.logger.InfoContext(ctx, "order placed",
		slog.Uint64("orderId", placed.OrderID),
		slog.Uint64("productId", placed.ProductID),
		slog.Int64("quantity", placed.Quantity),
		slog.String("total", placed.TotalAmount.String()),
	)
	return placed, nil
}

type UpdateOrderStatusInput struct {
	OrderID uint64             `json:"orderId" validate:"required"`
	Status  domain.OrderStatus `json:"status" validate:"required,max=32"`
}

// UpdateOrderStatus lets the vendor that owns the order move it to any status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, in UpdateOrderStatusInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return storeError(err)
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionUpdateOrderStatus, OwnerID: order.VendorID}); err != nil {
		return err
	}

	ok, err := s.orders.UpdateStatus(ctx, in.OrderID, in.Status)
	if err != nil {
		return storeError(err)
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	s.events.dispatch(domain.EventOrderStatusUpdated, domain.OrderStatusUpdatedEvent{
		OrderID:  order.ID,
		VendorID: order.VendorID,
		Status:   in.Status,
	})
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	// Either party to the order may read it.
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionViewOrders, OwnerID: o.EmployeeID}); err != nil {
		if vErr := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionViewOrders, OwnerID: o.VendorID}); vErr != nil {
			return nil, err
		}
	}
	return o, nil
}
