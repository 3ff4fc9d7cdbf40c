package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pharmacy-backend/internal/converter"
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/domain/repository"
	"pharmacy-backend/internal/infrastructure/metrics"
	"pharmacy-backend/internal/service"
	"pharmacy-backend/pkg/jwt"
	"pharmacy-backend/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid phone/email or password")
	ErrPendingApproval    = errors.New("account is pending admin approval")
	ErrAccountNotFound    = errors.New("account not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

const (
	minNameLength     = 2
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyToken(ctx context.Context, token string) (*jwt.Identity, error)
	GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*dto.AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AccountResponse, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, req *dto.ChangePasswordRequest) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	auditService service.AuditService
	hasher       *password.Hasher
	jwtService   *jwt.JWTService
	metrics      *metrics.Metrics

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	auditService service.AuditService,
	hasher *password.Hasher,
	jwtService *jwt.JWTService,
	m *metrics.Metrics,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		auditService: auditService,
		hasher:       hasher,
		jwtService:   jwtService,
		metrics:      m,
	}
}

func validateSignup(req *dto.SignupRequest) (entity.Role, error) {
	if len([]rune(strings.TrimSpace(req.Name))) < minNameLength {
		return 0, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLength)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return 0, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if err := validatePassword(req.Password); err != nil {
		return 0, err
	}

	if req.Role == 0 {
		return entity.RoleCustomer, nil
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return role, nil
}

func validatePassword(plain string) error {
	if len([]rune(plain)) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if len(plain) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}
	return nil
}

// Signup creates the account and issues a token. Uniqueness of the phone
// number is enforced by the store, so concurrent signups for one phone
// yield exactly one account.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	role, err := validateSignup(req)
	if err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(ctx, req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	account := entity.NewAccount(req.Name, req.Phone, hash, role, req.Email, req.Address)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.accountRepo.Create(ctx, tx, account); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to create account: %+v", err)
		return nil, err
	}

	err = u.auditService.LogCreate(ctx, tx, &account.ID, entity.AuditActionAccountSignup, "account", account.ID.String(), entity.JSON{
		"role":        int(account.Role),
		"is_approved": account.IsApproved,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.issue(account)
}

// Login verifies the secret before looking at approval, so the approval
// state of an account is only revealed to someone who knows its password.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := req.LoginIdentifier()
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", ErrValidation)
	}

	account, err := u.accountRepo.FindByPhoneOrEmail(ctx, u.db, identifier)
	if err != nil {
		u.log.Warnf("Failed to find account for login: %+v", err)
		return nil, err
	}

	if account == nil {
		// Spend the same bcrypt effort as a real comparison.
		if dummy := u.getDummyHash(); dummy != "" {
			if _, err := u.hasher.Compare(ctx, dummy, req.Password); err != nil {
				return nil, err
			}
		}
		u.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	ok, err := u.hasher.Compare(ctx, account.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		u.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !account.CanAuthenticate() {
		u.metrics.ObserveLogin(metrics.LoginPendingApproval)
		return nil, ErrPendingApproval
	}

	u.metrics.ObserveLogin(metrics.LoginSuccess)
	return u.issue(account)
}

func (u *authUsecase) issue(account *entity.Account) (*dto.AuthResponse, error) {
	token, expiresAt, err := u.jwtService.IssueToken(account.ID, account.Role)
	if err != nil {
		u.log.Warnf("Failed to issue token: %+v", err)
		return nil, err
	}
	u.metrics.TokenIssued()

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   *converter.AccountToResponse(account),
	}, nil
}

func (u *authUsecase) getDummyHash() string {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash(context.Background(), uuid.NewString())
		if err != nil {
			u.log.Warnf("Failed to prepare dummy hash: %+v", err)
			return
		}
		u.dummyHash = hash
	})
	return u.dummyHash
}

// VerifyToken checks the token and then re-reads the account, so the role
// returned is the stored one and deleted accounts lose access immediately.
func (u *authUsecase) VerifyToken(ctx context.Context, token string) (*jwt.Identity, error) {
	identity, err := u.jwtService.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	account, err := u.accountRepo.FindByID(ctx, u.db, identity.AccountID)
	if err != nil {
		u.log.Warnf("Failed to find account for token: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return &jwt.Identity{
		AccountID: account.ID,
		Role:      account.Role,
	}, nil
}

func (u *authUsecase) GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*dto.AccountResponse, error) {
	account, err := u.accountRepo.FindByID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return converter.AccountToResponse(account), nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.AccountResponse, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < minNameLength {
			return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLength)
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = entity.NormalizeEmail(*req.Email)
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}

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

	if len(fields) > 0 {
		changed := make([]string, 0, len(fields))
		for k := range fields {
			changed = append(changed, k)
		}

		if err := u.accountRepo.UpdateProfile(ctx, tx, accountID, fields); err != nil {
			u.log.Warnf("Failed to update profile: %+v", err)
			return nil, err
		}
		if err := u.auditService.Record(ctx, tx, &accountID, entity.AuditActionAccountProfileUpdate, entity.JSON{
			"fields": changed,
		}); err != nil {
			return nil, err
		}

		account, err = u.accountRepo.FindByID(ctx, tx, accountID)
		if err != nil {
			u.log.Warnf("Failed to reload account: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AccountToResponse(account), nil
}

// ChangePassword is the only path that rewrites a stored hash.
func (u *authUsecase) ChangePassword(ctx context.Context, accountID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	account, err := u.accountRepo.FindByID(ctx, u.db, accountID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	ok, err := u.hasher.Compare(ctx, account.PasswordHash, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}

	hash, err := u.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.accountRepo.UpdatePasswordHash(ctx, tx, accountID, hash); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}
	if err := u.auditService.Record(ctx, tx, &accountID, entity.AuditActionAccountPasswordChange, nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// isDuplicateKeyError reports a unique violation, whether gorm translated it
// or the raw PostgreSQL error came through.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}
