// Package planner computes stock-aware material requirements for a production
// run. It is a point-in-time read against current stock: nothing is reserved
// or decremented, and the plan must be rebuilt whenever the batch count, the
// recipe, or any involved material changes.
package planner

import (
	"eltuff/models"
)

// Requirement is one ingredient's need for the planned run.
type Requirement struct {
	MaterialID    uint    `json:"material_id"`
	MaterialName  string  `json:"material_name"`
	Unit          string  `json:"unit"`
	Needed        float64 `json:"needed"`
	InStock       float64 `json:"in_stock"`
	Shortfall     float64 `json:"shortfall"`
	ShortfallCost float64 `json:"shortfall_cost"`
	Sufficient    bool    `json:"sufficient"`
}

// Plan is the full requirements picture for a run of batchCount batches.
type Plan struct {
	RecipeID             uint          `json:"recipe_id"`
	BatchCount           float64       `json:"batch_count"`
	Requirements         []Requirement `json:"requirements"`
	TotalProcurementCost float64       `json:"total_procurement_cost"`
	FullyStocked         bool          `json:"fully_stocked"`
}

// Build scales each ingredient by batchCount and compares the result against
// the material's current stock. Duplicate material rows are kept separate,
// matching the costing view of the same recipe. A non-positive batch count is
// treated as a single batch.
func Build(recipe models.Recipe, batchCount float64) Plan {
	if batchCount <= 0 {
		batchCount = 1
	}

	plan := Plan{
		RecipeID:     recipe.ID,
		BatchCount:   batchCount,
		Requirements: make([]Requirement, 0, len(recipe.Ingredients)),
		FullyStocked: true,
	}

	for _, ingredient := range recipe.Ingredients {
		row := Requirement{
			MaterialID: ingredient.MaterialID,
			Needed:     ingredient.QuantityPerBatch * batchCount,
		}
		var costPerUnit float64
		if ingredient.Material != nil {
			row.MaterialName = ingredient.Material.Name
			row.Unit = ingredient.Material.Unit
			row.InStock = ingredient.Material.StockQuantity
			costPerUnit = ingredient.Material.CostPerUnit
		}

		if shortfall := row.Needed - row.InStock; shortfall > 0 {
			row.Shortfall = shortfall
		}
		row.ShortfallCost = row.Shortfall * costPerUnit
		row.Sufficient = row.Shortfall == 0

		if !row.Sufficient {
			plan.FullyStocked = false
		}
		plan.TotalProcurementCost += row.ShortfallCost
		plan.Requirements = append(plan.Requirements, row)
	}

	return plan
}
