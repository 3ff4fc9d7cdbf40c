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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type OrderUsecase interface {
	Checkout(ctx context.Context, accountID uuid.UUID, req *dto.CheckoutRequest) (*dto.OrderResponse, error)
	ListMine(ctx context.Context, accountID uuid.UUID) (*dto.OrderListResponse, error)
	GetMine(ctx context.Context, accountID, orderID uuid.UUID) (*dto.OrderResponse, error)
	ListAll(ctx context.Context) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	auditService service.AuditService
}

func NewOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	auditService service.AuditService,
) OrderUsecase {
	return &orderUsecase{
		db:           db,
		log:          log,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		auditService: auditService,
	}
}

// Checkout turns the cart into a pending order and empties the cart in the
// same transaction.
func (u *orderUsecase) Checkout(ctx context.Context, accountID uuid.UUID, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, fmt.Errorf("%w: shipping address is required", ErrValidation)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	items, err := u.cartRepo.FindByAccount(ctx, tx, accountID)
	if err != nil {
		u.log.Warnf("Failed to find cart items: %+v", err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	totals := entity.CalculateTotals(items)
	order := &entity.Order{
		AccountID:       accountID,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShippingAddress: address,
		Status:          entity.OrderStatusPending,
		Items:           make([]entity.OrderItem, len(items)),
	}
	for i, item := range items {
		order.Items[i] = entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	if err := u.orderRepo.Create(ctx, tx, order); err != nil {
		u.log.Warnf("Failed to create order: %+v", err)
		return nil, err
	}
	if err := u.cartRepo.Clear(ctx, tx, accountID); err != nil {
		u.log.Warnf("Failed to clear cart: %+v", err)
		return nil, err
	}
	if err := u.auditService.Record(ctx, tx, &accountID, entity.AuditActionOrderCheckout, entity.JSON{
		"order_id": order.ID.String(),
		"total":    order.Total.StringFixed(2),
		"items":    len(order.Items),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) ListMine(ctx context.Context, accountID uuid.UUID) (*dto.OrderListResponse, error) {
	orders, err := u.orderRepo.FindByAccount(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find orders: %+v", err)
		return nil, err
	}
	return &dto.OrderListResponse{
		Orders: converter.OrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

// GetMine reports another account's order as not found.
func (u *orderUsecase) GetMine(ctx context.Context, accountID, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := u.orderRepo.FindByIDForAccount(ctx, u.db, orderID, accountID)
	if err != nil {
		u.log.Warnf("Failed to find order by ID: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) ListAll(ctx context.Context) (*dto.OrderListResponse, error) {
	orders, err := u.orderRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all orders: %+v", err)
		return nil, err
	}
	return &dto.OrderListResponse{
		Orders: converter.OrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *orderUsecase) UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, req.Status)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.UpdateStatus(ctx, tx, orderID, status)
	if err != nil {
		u.log.Warnf("Failed to update order status: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := u.auditService.Record(ctx, tx, &actorID, entity.AuditActionOrderStatusUpdate, entity.JSON{
		"order_id": orderID.String(),
		"status":   string(status),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.OrderToResponse(order), nil
}
