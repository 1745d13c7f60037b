package models

import (
	"gorm.io/gorm"
)

// Product is a sellable storefront item. A product may be backed by a recipe
// through Recipe.ProductID, but the storefront price is set independently of
// the costing engine's recommendations.
type Product struct {
	gorm.Model
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(12,4);not null" json:"price"`
	Unit        string  `json:"unit"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
}
