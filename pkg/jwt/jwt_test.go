package jwt

import (
	"strings"
	"testing"
	"time"

	"pharmacy-backend/config"
	"pharmacy-backend/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: secret, Expiry: DefaultExpiry})
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestService("secret")
	accountID := uuid.New()

	token, expiresAt, err := svc.IssueToken(accountID, entity.RolePharmacist)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	identity, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, identity.AccountID)
	assert.Equal(t, entity.RolePharmacist, identity.Role)
}

func TestIssueToken_ExpiryIsSevenDaysAfterIssue(t *testing.T) {
	svc := newTestService("secret")
	token, _, err := svc.IssueToken(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestService("secret")
	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.IssueToken(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_ExpiredAtExactBoundary(t *testing.T) {
	svc := newTestService("secret")
	issued := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return issued }

	token, expiresAt, err := svc.IssueToken(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	svc.now = func() time.Time { return expiresAt }
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	svc.now = func() time.Time { return expiresAt.Add(-time.Second) }
	_, err = svc.VerifyToken(token)
	assert.NoError(t, err)
}

func TestVerifyToken_ExpiredWithForeignSignature(t *testing.T) {
	other := newTestService("other-secret")
	other.now = func() time.Time { return time.Now().Add(-30 * 24 * time.Hour) }
	token, _, err := other.IssueToken(uuid.New(), entity.RoleAdmin)
	require.NoError(t, err)

	_, err = newTestService("secret").VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, _, err := newTestService("secret1").IssueToken(uuid.New(), entity.RoleAdmin)
	require.NoError(t, err)

	_, err = newTestService("secret2").VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyToken_TamperedPayload(t *testing.T) {
	svc := newTestService("secret")
	token, _, err := svc.IssueToken(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	forged := &Claims{
		AccountID: uuid.New(),
		Role:      entity.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forgedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("attacker"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forgedToken, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.VerifyToken(spliced)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyToken_InvalidSigningMethod(t *testing.T) {
	svc := newTestService("secret")
	claims := &Claims{
		AccountID: uuid.New(),
		Role:      entity.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyToken_Malformed(t *testing.T) {
	svc := newTestService("secret")

	for _, token := range []string{"", "garbage", "invalid.token.string", "a.b"} {
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestVerifyToken_MissingExpiry(t *testing.T) {
	claims := &Claims{AccountID: uuid.New(), Role: entity.RoleCustomer}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestService("secret").VerifyToken(tokenString)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
