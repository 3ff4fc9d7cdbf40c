package repository

import (
	"context"
	"errors"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

// Create inserts the order together with its items.
func (r *orderRepository) Create(ctx context.Context, db *gorm.DB, order *entity.Order) error {
	return db.WithContext(ctx).Omit("Account").Create(order).Error
}

func (r *orderRepository) FindByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByIDForAccount(ctx context.Context, db *gorm.DB, id, accountID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND account_id = ?", id, accountID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Preload("Account").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	result := db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var order entity.Order
	if err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
