package repository

import (
	"context"

	"pharmacy-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, db *gorm.DB, product *entity.Product) error
	CreateBatch(ctx context.Context, db *gorm.DB, products []entity.Product) error
	FindAll(ctx context.Context, db *gorm.DB, filter entity.ProductFilter) ([]entity.Product, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Product, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, product *entity.Product) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
