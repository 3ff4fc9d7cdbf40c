package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryPrescription ProductCategory = "prescription"
	CategoryOTC          ProductCategory = "otc"
	CategoryVitamins     ProductCategory = "vitamins"
	CategoryWellness     ProductCategory = "wellness"
	CategoryBeauty       ProductCategory = "beauty"
	CategoryBaby         ProductCategory = "baby"
)

const DefaultStockQuantity = 100

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryPrescription, CategoryOTC, CategoryVitamins, CategoryWellness, CategoryBeauty, CategoryBaby:
		return true
	}
	return false
}

type Product struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                 string          `gorm:"type:varchar(255);not null"`
	Description          string          `gorm:"type:text"`
	Price                decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category             ProductCategory `gorm:"type:varchar(32);not null;index"`
	StockQuantity        int             `gorm:"not null"`
	RequiresPrescription bool            `gorm:"not null"`
	ImageURL             string          `gorm:"type:text"`
	CreatedAt            time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductFilter narrows catalog listings. Empty fields match everything.
type ProductFilter struct {
	Category ProductCategory
	Search   string
}
