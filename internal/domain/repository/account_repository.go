package repository

import (
	"context"

	"pharmacy-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository returns (nil, nil) from finders when no row matches.
type AccountRepository interface {
	Create(ctx context.Context, db *gorm.DB, account *entity.Account) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Account, error)
	FindByPhoneOrEmail(ctx context.Context, db *gorm.DB, identifier string) (*entity.Account, error)
	FindAll(ctx context.Context, db *gorm.DB, role *entity.Role) ([]entity.Account, error)
	SetApproved(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	UpdateProfile(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	UpdatePasswordHash(ctx context.Context, db *gorm.DB, id uuid.UUID, hash string) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
}
