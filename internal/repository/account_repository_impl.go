package repository

import (
	"context"
	"errors"
	"strings"

	"pharmacy-backend/internal/domain/entity"
	domainRepo "pharmacy-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, db *gorm.DB, account *entity.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Account, error) {
	var account entity.Account
	err := db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByPhoneOrEmail prefers a phone match; email comparison is case-insensitive
// because emails are stored lowercased.
func (r *accountRepository) FindByPhoneOrEmail(ctx context.Context, db *gorm.DB, identifier string) (*entity.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, nil
	}

	var account entity.Account
	err := db.WithContext(ctx).Where("phone = ?", identifier).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.WithContext(ctx).
		Where("email = ? AND email <> ''", entity.NormalizeEmail(identifier)).
		Order("created_at ASC").
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindAll(ctx context.Context, db *gorm.DB, role *entity.Role) ([]entity.Account, error) {
	var accounts []entity.Account
	query := db.WithContext(ctx).Order("created_at DESC")
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) SetApproved(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.Account{}).
		Where("id = ?", id).
		Update("is_approved", true).Error
}

// UpdateProfile writes only the given columns; password_hash is never part of it.
func (r *accountRepository) UpdateProfile(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	delete(fields, "password_hash")
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&entity.Account{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, db *gorm.DB, id uuid.UUID, hash string) error {
	return db.WithContext(ctx).Model(&entity.Account{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *accountRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Account{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
