package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"
	"pharmacy-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// categoryAll in a listing query disables the category filter.
const categoryAll = "all"

type ProductUsecase interface {
	List(ctx context.Context, category, search string) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Seed(ctx context.Context, actorID uuid.UUID) (*dto.SeedProductsResponse, error)
}

type productUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	productRepo  repository.ProductRepository
	auditService service.AuditService
	cache        *service.ProductCache
}

func NewProductUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	auditService service.AuditService,
	cache *service.ProductCache,
) ProductUsecase {
	return &productUsecase{
		db:           db,
		log:          log,
		productRepo:  productRepo,
		auditService: auditService,
		cache:        cache,
	}
}

func parseCategory(raw string) (entity.ProductCategory, error) {
	category := entity.ProductCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !category.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
	}
	return category, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

func (u *productUsecase) List(ctx context.Context, category, search string) (*dto.ProductListResponse, error) {
	filter := entity.ProductFilter{Search: strings.TrimSpace(search)}
	if category != "" && !strings.EqualFold(category, categoryAll) {
		c, err := parseCategory(category)
		if err != nil {
			return nil, err
		}
		filter.Category = c
	}

	products, gen, ok := u.cache.GetList(ctx, filter)
	if !ok {
		var err error
		products, err = u.productRepo.FindAll(ctx, u.db, filter)
		if err != nil {
			u.log.Warnf("Failed to find products: %+v", err)
			return nil, err
		}
		u.cache.SetList(ctx, gen, filter, products)
	}

	return &dto.ProductListResponse{
		Products: converter.ProductsToResponses(products),
		Total:    len(products),
	}, nil
}

func (u *productUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, gen, ok := u.cache.GetProduct(ctx, id)
	if ok {
		return converter.ProductToResponse(product), nil
	}

	product, err := u.productRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	u.cache.SetProduct(ctx, gen, product)

	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if err := validatePrice(*req.Price); err != nil {
		return nil, err
	}

	category := entity.CategoryOTC
	if req.Category != "" {
		c, err := parseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	stock := entity.DefaultStockQuantity
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}

	product := &entity.Product{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		Price:                *req.Price,
		Category:             category,
		StockQuantity:        stock,
		RequiresPrescription: req.RequiresPrescription,
		ImageURL:             req.ImageURL,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.productRepo.Create(ctx, tx, product); err != nil {
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, err
	}

	resp := converter.ProductToResponse(product)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionProductCreate, "product", product.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return resp, nil
}

// Update applies only the fields present in req.
func (u *productUsecase) Update(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	product, err := u.productRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	before := converter.ProductToResponse(product)

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		c, err := parseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		product.Category = c
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.RequiresPrescription != nil {
		product.RequiresPrescription = *req.RequiresPrescription
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := u.productRepo.Update(ctx, tx, product); err != nil {
		u.log.Warnf("Failed to update product: %+v", err)
		return nil, err
	}

	after := converter.ProductToResponse(product)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionProductUpdate, "product", id.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return after, nil
}

func (u *productUsecase) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	product, err := u.productRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := u.productRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete product: %+v", err)
		return err
	}
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionProductDelete, "product", id.String(), converter.ProductToResponse(product)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	u.cache.Invalidate(ctx)

	return nil
}

// Seed inserts the starter catalogue into an empty product table and is a
// no-op otherwise.
func (u *productUsecase) Seed(ctx context.Context, actorID uuid.UUID) (*dto.SeedProductsResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.productRepo.Count(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to count products: %+v", err)
		return nil, err
	}
	if existing > 0 {
		return &dto.SeedProductsResponse{Seeded: false, Existing: existing}, nil
	}

	products := starterProducts()
	if err := u.productRepo.CreateBatch(ctx, tx, products); err != nil {
		u.log.Warnf("Failed to seed products: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(ctx, tx, &actorID, entity.AuditActionProductSeed, entity.JSON{
		"inserted": len(products),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return &dto.SeedProductsResponse{Seeded: true, Inserted: len(products)}, nil
}
