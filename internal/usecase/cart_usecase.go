package usecase

import (
	"context"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartUsecase operates on the cart of the calling account. Every mutation
// returns the resulting cart.
type CartUsecase interface {
	Get(ctx context.Context, accountID uuid.UUID) (*dto.CartResponse, error)
	AddItem(ctx context.Context, accountID uuid.UUID, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, accountID uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, accountID, productID uuid.UUID) (*dto.CartResponse, error)
	Clear(ctx context.Context, accountID uuid.UUID) error
}

type cartUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartUsecase {
	return &cartUsecase{
		db:          db,
		log:         log,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (u *cartUsecase) Get(ctx context.Context, accountID uuid.UUID) (*dto.CartResponse, error) {
	items, err := u.cartRepo.FindByAccount(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find cart items: %+v", err)
		return nil, err
	}
	return converter.CartToResponse(items), nil
}

// AddItem snapshots name, price and category from the catalogue. Adding a
// product already in the cart increases its quantity.
func (u *cartUsecase) AddItem(ctx context.Context, accountID uuid.UUID, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := u.productRepo.FindByID(ctx, u.db, req.ProductID)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item := &entity.CartItem{
		AccountID:            accountID,
		ProductID:            product.ID,
		Name:                 product.Name,
		Price:                product.Price,
		Quantity:             quantity,
		Category:             product.Category,
		RequiresPrescription: product.RequiresPrescription,
	}
	if err := u.cartRepo.AddOrIncrement(ctx, u.db, item); err != nil {
		u.log.Warnf("Failed to add cart item: %+v", err)
		return nil, err
	}

	return u.Get(ctx, accountID)
}

// UpdateItem sets the quantity of a line; zero or less removes it.
func (u *cartUsecase) UpdateItem(ctx context.Context, accountID uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if req.Quantity <= 0 {
		return u.RemoveItem(ctx, accountID, req.ProductID)
	}

	if err := u.cartRepo.SetQuantity(ctx, u.db, accountID, req.ProductID, req.Quantity); err != nil {
		u.log.Warnf("Failed to update cart item: %+v", err)
		return nil, err
	}
	return u.Get(ctx, accountID)
}

func (u *cartUsecase) RemoveItem(ctx context.Context, accountID, productID uuid.UUID) (*dto.CartResponse, error) {
	if err := u.cartRepo.RemoveItem(ctx, u.db, accountID, productID); err != nil {
		u.log.Warnf("Failed to remove cart item: %+v", err)
		return nil, err
	}
	return u.Get(ctx, accountID)
}

func (u *cartUsecase) Clear(ctx context.Context, accountID uuid.UUID) error {
	if err := u.cartRepo.Clear(ctx, u.db, accountID); err != nil {
		u.log.Warnf("Failed to clear cart: %+v", err)
		return err
	}
	return nil
}
