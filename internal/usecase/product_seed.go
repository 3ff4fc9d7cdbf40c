package usecase

import (
	"pharmacy-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name         string
	category     entity.ProductCategory
	price        string
	prescription bool
	description  string
	stock        int
}

var starterCatalog = []seedProduct{
	{"Vitamin C 1000mg", entity.CategoryVitamins, "15.99", false, "High-potency vitamin C supplement for immune support", 100},
	{"Pain Relief Tablets", entity.CategoryOTC, "8.99", false, "Fast-acting pain relief for headaches and muscle aches", 200},
	{"Amoxicillin 500mg", entity.CategoryPrescription, "24.99", true, "Antibiotic medication - prescription required", 50},
	{"Moisturizing Cream", entity.CategoryBeauty, "19.99", false, "Deep hydration for all skin types", 75},
	{"Baby Shampoo", entity.CategoryBaby, "12.99", false, "Gentle, tear-free formula for babies", 60},
	{"Blood Pressure Monitor", entity.CategoryWellness, "49.99", false, "Digital blood pressure monitor for home use", 25},
	{"Omega-3 Fish Oil", entity.CategoryVitamins, "22.99", false, "Heart-healthy omega-3 fatty acids", 80},
	{"Allergy Relief", entity.CategoryOTC, "11.99", false, "24-hour non-drowsy allergy relief", 150},
	{"Insulin Pen", entity.CategoryPrescription, "89.99", true, "Insulin delivery device - prescription required", 30},
	{"Sunscreen SPF 50", entity.CategoryBeauty, "14.99", false, "Broad spectrum sun protection", 90},
	{"Baby Diapers Pack", entity.CategoryBaby, "29.99", false, "Ultra-absorbent diapers, pack of 50", 40},
	{"Digital Thermometer", entity.CategoryWellness, "18.99", false, "Fast and accurate temperature readings", 70},
}

func starterProducts() []entity.Product {
	products := make([]entity.Product, len(starterCatalog))
	for i, p := range starterCatalog {
		products[i] = entity.Product{
			Name:                 p.name,
			Description:          p.description,
			Price:                decimal.RequireFromString(p.price),
			Category:             p.category,
			StockQuantity:        p.stock,
			RequiresPrescription: p.prescription,
		}
	}
	return products
}
