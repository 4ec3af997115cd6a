package gormstore

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domain.ErrDuplicateEmail.Wrap(err)
		}
		return errors.Wrap(err, "create user")
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var u domain.User
	if err := primary(ctx, r.db).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find user %d", id)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := primary(ctx, r.db).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return &u, nil
}

func (r *userRepo) ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	var out []domain.User
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&out).Error; err != nil {
		return nil, errors.Wrapf(err, "list %s users", status)
	}
	return out, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return out, nil
}

func (r *userRepo) SetStatus(ctx context.Context, id uint64, status domain.UserStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "set status of user %d", id)
	}
	return res.RowsAffected > 0, nil
}
