package models

import (
	"gorm.io/gorm"
)

// RecipeOverhead is a flat per-batch cost attached to a recipe, such as
// labour, packaging, or utilities.
type RecipeOverhead struct {
	gorm.Model
	RecipeID     uint    `gorm:"not null;index" json:"recipe_id"`
	Label        string  `gorm:"not null" json:"label"`
	CostPerBatch float64 `gorm:"type:decimal(12,4);not null" json:"cost_per_batch"`
}
