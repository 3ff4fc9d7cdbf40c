package usecase

import (
	"context"
	"errors"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"
	"pharmacy-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// AccountUsecase holds the administrative user-management operations.
type AccountUsecase interface {
	List(ctx context.Context, role *entity.Role) (*dto.AccountListResponse, error)
	Approve(ctx context.Context, actorID, accountID uuid.UUID) (*dto.AccountResponse, error)
	Delete(ctx context.Context, actorID, accountID uuid.UUID) error
}

type accountUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	cartRepo     repository.CartRepository
	auditService service.AuditService
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	cartRepo repository.CartRepository,
	auditService service.AuditService,
) AccountUsecase {
	return &accountUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		cartRepo:     cartRepo,
		auditService: auditService,
	}
}

func (u *accountUsecase) List(ctx context.Context, role *entity.Role) (*dto.AccountListResponse, error) {
	accounts, err := u.accountRepo.FindAll(ctx, u.db, role)
	if err != nil {
		u.log.Warnf("Failed to find accounts: %+v", err)
		return nil, err
	}

	return &dto.AccountListResponse{
		Accounts: converter.AccountsToResponses(accounts),
		Total:    len(accounts),
	}, nil
}

// Approve is idempotent: approving an approved account changes nothing and
// records nothing.
func (u *accountUsecase) Approve(ctx context.Context, actorID, accountID uuid.UUID) (*dto.AccountResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if !account.IsApproved {
		if err := u.accountRepo.SetApproved(ctx, tx, accountID); err != nil {
			u.log.Warnf("Failed to approve account: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAccountApprove, "account", accountID.String(), false, true); err != nil {
			return nil, err
		}
		account.IsApproved = true
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AccountToResponse(account), nil
}

// Delete removes the account and its cart. Orders are kept as history.
func (u *accountUsecase) Delete(ctx context.Context, actorID, accountID uuid.UUID) error {
	if actorID == accountID {
		return ErrCannotDeleteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account, err := u.accountRepo.FindByID(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := u.cartRepo.Clear(ctx, tx, accountID); err != nil {
		u.log.Warnf("Failed to clear cart of deleted account: %+v", err)
		return err
	}

	deleted, err := u.accountRepo.Delete(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to delete account: %+v", err)
		return err
	}
	if !deleted {
		return ErrAccountNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionAccountDelete, "account", accountID.String(), converter.AccountToResponse(account)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
