package models

import (
	"gorm.io/gorm"
)

// RecipeIngredient links a recipe to a raw material with the quantity consumed
// per single batch. The material link is a lookup, not ownership: costing
// always resolves the material's current cost at read time.
type RecipeIngredient struct {
	gorm.Model
	RecipeID         uint    `gorm:"not null;index" json:"recipe_id"`
	MaterialID       uint    `gorm:"not null;index" json:"material_id"`
	QuantityPerBatch float64 `gorm:"type:decimal(12,4);not null" json:"quantity_per_batch"`

	Material *RawMaterial `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}
