package jwt

import (
	"errors"
	"fmt"
	"time"

	"pharmacy-backend/config"
	"pharmacy-backend/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpiredToken     = errors.New("token has expired")
	ErrMalformedToken   = errors.New("token is malformed")
)

// DefaultExpiry is the validity window of an issued token.
const DefaultExpiry = 7 * 24 * time.Hour

type Claims struct {
	AccountID uuid.UUID   `json:"account_id"`
	Role      entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	AccountID uuid.UUID
	Role      entity.Role
}

type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &JWTService{
		secret: []byte(cfg.Secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// IssueToken signs {account_id, role, iat, exp} with exp = iat + expiry.
func (s *JWTService) IssueToken(accountID uuid.UUID, role entity.Role) (string, time.Time, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.expiry)

	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks expiry first, then the signature. It performs no I/O.
func (s *JWTService) VerifyToken(tokenString string) (*Identity, error) {
	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return nil, ErrMalformedToken
	}
	if unverified.ExpiresAt == nil || unverified.AccountID == uuid.Nil {
		return nil, ErrMalformedToken
	}
	if !s.now().Before(unverified.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformedToken
		}
		return nil, ErrInvalidSignature
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	return &Identity{
		AccountID: claims.AccountID,
		Role:      claims.Role,
	}, nil
}

func (s *JWTService) GetExpiry() time.Duration {
	return s.expiry
}
