package repository

import (
	"context"
	"time"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct{}

func NewCartRepository() domainRepo.CartRepository {
	return &cartRepository{}
}

func (r *cartRepository) FindByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement relies on the (account_id, product_id) unique index so two
// concurrent adds of the same product both land on one line.
func (r *cartRepository) AddOrIncrement(ctx context.Context, db *gorm.DB, item *entity.CartItem) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

func (r *cartRepository) SetQuantity(ctx context.Context, db *gorm.DB, accountID, productID uuid.UUID, quantity int) error {
	return db.WithContext(ctx).Model(&entity.CartItem{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Update("quantity", quantity).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, db *gorm.DB, accountID, productID uuid.UUID) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&entity.CartItem{}).Error
}

func (r *cartRepository) Clear(ctx context.Context, db *gorm.DB, accountID uuid.UUID) error {
	return db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&entity.CartItem{}).Error
}
