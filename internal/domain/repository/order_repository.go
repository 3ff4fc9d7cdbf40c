package repository

import (
	"context"

	"pharmacy-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, db *gorm.DB, order *entity.Order) error
	FindByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID) ([]entity.Order, error)
	FindByIDForAccount(ctx context.Context, db *gorm.DB, id, accountID uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
