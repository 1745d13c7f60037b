package costing

import (
	"eltuff/models"
)

// IngredientCost is one costed ingredient line of a batch.
type IngredientCost struct {
	MaterialID       uint    `json:"material_id"`
	MaterialName     string  `json:"material_name"`
	Unit             string  `json:"unit"`
	QuantityPerBatch float64 `json:"quantity_per_batch"`
	CostPerUnit      float64 `json:"cost_per_unit"`
	LineCost         float64 `json:"line_cost"`
}

// OverheadCost is one flat per-batch overhead line.
type OverheadCost struct {
	Label        string  `json:"label"`
	CostPerBatch float64 `json:"cost_per_batch"`
}

// Breakdown is the per-batch cost of a recipe at current material prices.
// It is recomputed on every read; there is no stored recipe cost anywhere.
type Breakdown struct {
	RecipeID       uint             `json:"recipe_id"`
	RecipeName     string           `json:"recipe_name"`
	BatchYield     float64          `json:"batch_yield"`
	YieldUnit      string           `json:"yield_unit"`
	Ingredients    []IngredientCost `json:"ingredients"`
	Overheads      []OverheadCost   `json:"overheads"`
	MaterialCost   float64          `json:"material_cost"`
	OverheadCost   float64          `json:"overhead_cost"`
	TotalBatchCost float64          `json:"total_batch_cost"`
	CostPerUnit    float64          `json:"cost_per_unit"`
}

// RunTotals scales a breakdown to a production run of batchCount batches.
// CostPerUnit is deliberately absent: it is invariant under scaling.
type RunTotals struct {
	BatchCount        float64 `json:"batch_count"`
	TotalUnits        float64 `json:"total_units"`
	TotalMaterialCost float64 `json:"total_material_cost"`
	TotalOverheadCost float64 `json:"total_overhead_cost"`
	TotalCost         float64 `json:"total_cost"`
}

// Compute derives the batch cost breakdown for a recipe whose ingredients have
// their materials resolved. Ingredient rows without a resolved material
// contribute quantity but zero cost; duplicate materials simply sum.
func Compute(recipe models.Recipe) Breakdown {
	breakdown := Breakdown{
		RecipeID:    recipe.ID,
		RecipeName:  recipe.Name,
		BatchYield:  recipe.BatchYield,
		YieldUnit:   recipe.YieldUnit,
		Ingredients: make([]IngredientCost, 0, len(recipe.Ingredients)),
		Overheads:   make([]OverheadCost, 0, len(recipe.Overheads)),
	}

	for _, ingredient := range recipe.Ingredients {
		line := IngredientCost{
			MaterialID:       ingredient.MaterialID,
			QuantityPerBatch: ingredient.QuantityPerBatch,
		}
		if ingredient.Material != nil {
			line.MaterialName = ingredient.Material.Name
			line.Unit = ingredient.Material.Unit
			line.CostPerUnit = ingredient.Material.CostPerUnit
		}
		line.LineCost = line.QuantityPerBatch * line.CostPerUnit
		breakdown.MaterialCost += line.LineCost
		breakdown.Ingredients = append(breakdown.Ingredients, line)
	}

	for _, overhead := range recipe.Overheads {
		breakdown.OverheadCost += overhead.CostPerBatch
		breakdown.Overheads = append(breakdown.Overheads, OverheadCost{
			Label:        overhead.Label,
			CostPerBatch: overhead.CostPerBatch,
		})
	}

	breakdown.TotalBatchCost = breakdown.MaterialCost + breakdown.OverheadCost

	// The recipe store rejects non-positive yields; treat yield as 1 here so a
	// bad row degrades to a per-batch cost instead of dividing by zero.
	yield := breakdown.BatchYield
	if yield <= 0 {
		yield = 1
	}
	breakdown.CostPerUnit = breakdown.TotalBatchCost / yield

	return breakdown
}

// Scale projects the breakdown onto a run of batchCount batches. A
// non-positive batch count is treated as a single batch.
func (b Breakdown) Scale(batchCount float64) RunTotals {
	if batchCount <= 0 {
		batchCount = 1
	}
	return RunTotals{
		BatchCount:        batchCount,
		TotalUnits:        b.BatchYield * batchCount,
		TotalMaterialCost: b.MaterialCost * batchCount,
		TotalOverheadCost: b.OverheadCost * batchCount,
		TotalCost:         b.TotalBatchCost * batchCount,
	}
}
