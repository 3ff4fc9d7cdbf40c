package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a registered identity. PasswordHash never leaves the service.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Email        string    `gorm:"type:varchar(255);index" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	Role         Role      `gorm:"not null;index" json:"role"`
	IsApproved   bool      `gorm:"not null" json:"is_approved"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAccount builds an unsaved account. The initial approval state depends on
// the role: Admin and Customer start approved, every other role waits for an
// administrator.
func NewAccount(name, phone, passwordHash string, role Role, email, address string) *Account {
	account := &Account{
		Name:         strings.TrimSpace(name),
		Phone:        strings.TrimSpace(phone),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Address:      strings.TrimSpace(address),
		Role:         role,
	}

	switch role {
	case RoleAdmin, RoleCustomer:
		account.IsApproved = true
	default:
		account.IsApproved = false
	}

	return account
}

// CanAuthenticate applies the approval gate used at login.
func (a *Account) CanAuthenticate() bool {
	return a.IsApproved || a.Role == RoleCustomer
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
