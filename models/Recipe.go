package models

import (
	"gorm.io/gorm"
)

// Recipe describes how one batch of a product is produced: the materials it
// consumes, the flat overheads it carries, and how many sellable units a
// single batch yields.
type Recipe struct {
	gorm.Model
	Name       string   `gorm:"not null" json:"name"`
	ProductID  *uint    `json:"product_id,omitempty"`
	Product    *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BatchYield float64  `gorm:"type:decimal(12,4);not null" json:"batch_yield"`
	YieldUnit  string   `json:"yield_unit"`
	IsActive   bool     `gorm:"not null;default:true" json:"is_active"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	Overheads   []RecipeOverhead   `gorm:"foreignKey:RecipeID" json:"overheads"`
}
