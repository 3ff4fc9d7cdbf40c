package repository

import (
	"context"

	"pharmacy-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID) ([]entity.CartItem, error)
	// AddOrIncrement inserts the line or adds item.Quantity to the existing one.
	AddOrIncrement(ctx context.Context, db *gorm.DB, item *entity.CartItem) error
	SetQuantity(ctx context.Context, db *gorm.DB, accountID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, db *gorm.DB, accountID, productID uuid.UUID) error
	Clear(ctx context.Context, db *gorm.DB, accountID uuid.UUID) error
}
