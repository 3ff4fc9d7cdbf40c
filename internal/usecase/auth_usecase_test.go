package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/infrastructure/metrics"
	"pharmacy-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSignupAndLogin_CustomerExample(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	signup, err := env.auth.Signup(ctx, &dto.SignupRequest{
		Name:     "Alice",
		Phone:    "5551234",
		Password: "longenough",
		Role:     3,
	})
	require.NoError(t, err)
	assert.True(t, signup.Account.IsApproved)
	assert.Equal(t, int(entity.RoleCustomer), signup.Account.Role)
	assert.NotEmpty(t, signup.Token)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Identifier: "5551234", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, signup.Account.ID, login.Account.ID)

	identity, err := env.jwt.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.Account.ID, identity.AccountID)
	assert.Equal(t, entity.RoleCustomer, identity.Role)

	raw, err := json.Marshal(login)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "longenough")
	assert.NotContains(t, string(raw), "$2a$")
}

func TestSignup_StoresOnlyHash(t *testing.T) {
	env := newTestEnv(t)
	resp := env.signup(t, "Bob", "5550001", 0)

	var account entity.Account
	require.NoError(t, env.db.First(&account, "id = ?", resp.Account.ID).Error)
	assert.NotEqual(t, "longenough", account.PasswordHash)
	assert.True(t, strings.HasPrefix(account.PasswordHash, "$2a$"))
	assert.Equal(t, entity.RoleCustomer, account.Role, "role defaults to customer")
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{"short name", dto.SignupRequest{Name: "A", Phone: "1", Password: "longenough"}},
		{"blank name", dto.SignupRequest{Name: "   ", Phone: "1", Password: "longenough"}},
		{"missing phone", dto.SignupRequest{Name: "Alice", Password: "longenough"}},
		{"short password", dto.SignupRequest{Name: "Alice", Phone: "1", Password: "short"}},
		{"long password", dto.SignupRequest{Name: "Alice", Phone: "1", Password: strings.Repeat("x", 73)}},
		{"role out of range", dto.SignupRequest{Name: "Alice", Phone: "1", Password: "longenough", Role: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Signup(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSignup_DuplicatePhone(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "5551234", 3)

	_, err := env.auth.Signup(context.Background(), &dto.SignupRequest{
		Name: "Mallory", Phone: "5551234", Password: "longenough",
	})
	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
}

func TestSignup_ConcurrentDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.auth.Signup(context.Background(), &dto.SignupRequest{
				Name: "Racer", Phone: "5559999", Password: "longenough",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, env.db.Model(&entity.Account{}).Where("phone = ?", "5559999").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "5551234", 3)
	ctx := context.Background()

	_, unknownErr := env.auth.Login(ctx, &dto.LoginRequest{Identifier: "0000000", Password: "longenough"})
	_, wrongErr := env.auth.Login(ctx, &dto.LoginRequest{Identifier: "5551234", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, 2.0, promtestutil.ToFloat64(env.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidCredentials)))
}

func TestLogin_ByEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Signup(context.Background(), &dto.SignupRequest{
		Name: "Carol", Phone: "5552222", Password: "longenough", Email: "Carol@Example.com",
	})
	require.NoError(t, err)

	resp, err := env.auth.Login(context.Background(), &dto.LoginRequest{Email: "CAROL@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", resp.Account.Email)
}

func TestLogin_MissingIdentifier(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Login(context.Background(), &dto.LoginRequest{Password: "longenough"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_ApprovalGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.signup(t, "Admin", "5550000", int(entity.RoleAdmin))
	assert.True(t, admin.Account.IsApproved)
	_, err := env.auth.Login(ctx, &dto.LoginRequest{Phone: "5550000", Password: "longenough"})
	require.NoError(t, err, "admins log in immediately")

	for _, role := range []entity.Role{entity.RolePharmacist, entity.RoleSupplier, entity.RoleDeliverer} {
		phone := "555100" + string(rune('0'+int(role)))
		staff := env.signup(t, role.String(), phone, int(role))
		assert.False(t, staff.Account.IsApproved)

		_, err = env.auth.Login(ctx, &dto.LoginRequest{Identifier: phone, Password: "longenough"})
		assert.ErrorIs(t, err, ErrPendingApproval, role.String())

		_, err = env.auth.Login(ctx, &dto.LoginRequest{Identifier: phone, Password: "not-the-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials, "approval state is hidden behind the password")

		_, err = env.accounts.Approve(ctx, admin.Account.ID, staff.Account.ID)
		require.NoError(t, err)

		resp, err := env.auth.Login(ctx, &dto.LoginRequest{Identifier: phone, Password: "longenough"})
		require.NoError(t, err, role.String())
		assert.True(t, resp.Account.IsApproved)
	}

	assert.Equal(t, 3.0, promtestutil.ToFloat64(env.metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginPendingApproval)))
}

func TestVerifyToken_UsesStoredAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.signup(t, "Admin", "5550000", int(entity.RoleAdmin))
	customer := env.signup(t, "Alice", "5551234", int(entity.RoleCustomer))

	identity, err := env.auth.VerifyToken(ctx, customer.Token)
	require.NoError(t, err)
	assert.Equal(t, customer.Account.ID, identity.AccountID)
	assert.Equal(t, entity.RoleCustomer, identity.Role)

	// A token claiming Admin for a customer account still resolves to Customer.
	forged, _, err := env.jwt.IssueToken(customer.Account.ID, entity.RoleAdmin)
	require.NoError(t, err)
	identity, err = env.auth.VerifyToken(ctx, forged)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, identity.Role)

	require.NoError(t, env.accounts.Delete(ctx, admin.Account.ID, customer.Account.ID))
	_, err = env.auth.VerifyToken(ctx, customer.Token)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = env.auth.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, jwt.ErrMalformedToken)
}

func TestGetCurrentAccount(t *testing.T) {
	env := newTestEnv(t)
	resp := env.signup(t, "Alice", "5551234", 3)

	account, err := env.auth.GetCurrentAccount(context.Background(), resp.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.Name)

	_, err = env.auth.GetCurrentAccount(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateProfile_KeepsPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signup(t, "Alice", "5551234", 3)

	var before entity.Account
	require.NoError(t, env.db.First(&before, "id = ?", resp.Account.ID).Error)

	name, email, address := "Alice Smith", " Alice@Example.COM ", "12 Main St"
	updated, err := env.auth.UpdateProfile(ctx, resp.Account.ID, &dto.UpdateProfileRequest{
		Name: &name, Email: &email, Address: &address,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "12 Main St", updated.Address)

	var after entity.Account
	require.NoError(t, env.db.First(&after, "id = ?", resp.Account.ID).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	short := "A"
	_, err = env.auth.UpdateProfile(ctx, resp.Account.ID, &dto.UpdateProfileRequest{Name: &short})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	resp := env.signup(t, "Alice", "5551234", 3)

	err := env.auth.ChangePassword(ctx, resp.Account.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password", NewPassword: "brand-new-secret",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = env.auth.ChangePassword(ctx, resp.Account.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "longenough", NewPassword: "brand-new-secret",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Identifier: "5551234", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Identifier: "5551234", Password: "brand-new-secret"})
	assert.NoError(t, err)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, isDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplicateKeyError(assert.AnError))
}
