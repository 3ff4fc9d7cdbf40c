package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of an account's cart. (account_id, product_id) is unique.
type CartItem struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_account_product"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_account_product"`
	Name                 string          `gorm:"type:varchar(255);not null"`
	Price                decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity             int             `gorm:"not null"`
	Category             ProductCategory `gorm:"type:varchar(32)"`
	RequiresPrescription bool            `gorm:"not null"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// LineTotal is price x quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
