package usecase

import (
	"context"
	"testing"

	"pharmacy-backend/config"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/infrastructure/metrics"
	"pharmacy-backend/internal/repository"
	"pharmacy-backend/internal/service"
	"pharmacy-backend/internal/testutil"
	"pharmacy-backend/pkg/jwt"
	"pharmacy-backend/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	jwt     *jwt.JWTService
	metrics *metrics.Metrics

	auth     AuthUsecase
	accounts AccountUsecase
	products ProductUsecase
	carts    CartUsecase
	orders   OrderUsecase
	audit    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	m := metrics.NewMetrics()
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	hasher := password.NewHasher(4, 4)

	accountRepo := repository.NewAccountRepository()
	productRepo := repository.NewProductRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)

	return &testEnv{
		db:       db,
		jwt:      jwtService,
		metrics:  m,
		auth:     NewAuthUsecase(db, log, accountRepo, auditService, hasher, jwtService, m),
		accounts: NewAccountUsecase(db, log, accountRepo, cartRepo, auditService),
		products: NewProductUsecase(db, log, productRepo, auditService, nil),
		carts:    NewCartUsecase(db, log, cartRepo, productRepo),
		orders:   NewOrderUsecase(db, log, orderRepo, cartRepo, auditService),
		audit:    NewAuditLogUsecase(db, log, auditRepo),
	}
}

func (e *testEnv) signup(t *testing.T, name, phone string, role int) *dto.AuthResponse {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), &dto.SignupRequest{
		Name:     name,
		Phone:    phone,
		Password: "longenough",
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}
