package gormstore

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the header only; items go through CreateItem.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return errors.Wrap(err, "create order")
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return errors.Wrapf(err, "create item for order %d", item.OrderID)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := primary(ctx, r.db).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find order %d", id)
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "update status of order %d", id)
	}
	return res.RowsAffected > 0, nil
}
