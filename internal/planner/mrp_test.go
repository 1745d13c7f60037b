package planner

import (
	"math"
	"testing"

	"gorm.io/gorm"

	"eltuff/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func soapRecipe(causticStock, fragranceStock float64) models.Recipe {
	causticSoda := &models.RawMaterial{
		Model:         gorm.Model{ID: 1},
		Name:          "Caustic Soda",
		Unit:          "kg",
		CostPerUnit:   10,
		StockQuantity: causticStock,
	}
	fragrance := &models.RawMaterial{
		Model:         gorm.Model{ID: 2},
		Name:          "Lemon Fragrance Oil",
		Unit:          "L",
		CostPerUnit:   30,
		StockQuantity: fragranceStock,
	}

	return models.Recipe{
		Model:      gorm.Model{ID: 7},
		Name:       "Liquid Soap A",
		BatchYield: 50,
		Ingredients: []models.RecipeIngredient{
			{RecipeID: 7, MaterialID: 1, QuantityPerBatch: 2, Material: causticSoda},
			{RecipeID: 7, MaterialID: 2, QuantityPerBatch: 0.5, Material: fragrance},
		},
	}
}

func TestBuildFullyStocked(t *testing.T) {
	t.Parallel()

	plan := Build(soapRecipe(10, 5), 3)

	if !plan.FullyStocked {
		t.Fatalf("expected fully stocked plan")
	}
	if !almostEqual(plan.TotalProcurementCost, 0) {
		t.Fatalf("TotalProcurementCost = %v, want 0", plan.TotalProcurementCost)
	}
	for _, row := range plan.Requirements {
		if !row.Sufficient || row.Shortfall != 0 {
			t.Fatalf("row %s: expected sufficient with zero shortfall, got %+v", row.MaterialName, row)
		}
	}
}

func TestBuildShortfall(t *testing.T) {
	t.Parallel()

	// 4 batches need 8kg caustic and 2L fragrance against 5kg and 0.5L in
	// stock.
	plan := Build(soapRecipe(5, 0.5), 4)

	if plan.FullyStocked {
		t.Fatalf("expected shortfalls")
	}
	if len(plan.Requirements) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(plan.Requirements))
	}

	caustic := plan.Requirements[0]
	if !almostEqual(caustic.Needed, 8) || !almostEqual(caustic.Shortfall, 3) {
		t.Fatalf("caustic row = %+v, want needed 8 shortfall 3", caustic)
	}
	if !almostEqual(caustic.ShortfallCost, 30) {
		t.Fatalf("caustic shortfall cost = %v, want 30", caustic.ShortfallCost)
	}

	fragrance := plan.Requirements[1]
	if !almostEqual(fragrance.Shortfall, 1.5) || !almostEqual(fragrance.ShortfallCost, 45) {
		t.Fatalf("fragrance row = %+v, want shortfall 1.5 cost 45", fragrance)
	}

	if !almostEqual(plan.TotalProcurementCost, 75) {
		t.Fatalf("TotalProcurementCost = %v, want 75", plan.TotalProcurementCost)
	}
}

func TestBuildShortfallNeverNegative(t *testing.T) {
	t.Parallel()

	// Stock far above need must clamp at zero, not go negative.
	plan := Build(soapRecipe(1000, 1000), 1)
	for _, row := range plan.Requirements {
		if row.Shortfall < 0 {
			t.Fatalf("negative shortfall for %s: %v", row.MaterialName, row.Shortfall)
		}
		if row.InStock >= row.Needed && row.Shortfall != 0 {
			t.Fatalf("row %s: shortfall %v with stock covering need", row.MaterialName, row.Shortfall)
		}
	}
}

func TestBuildClampsNonPositiveBatchCount(t *testing.T) {
	t.Parallel()

	plan := Build(soapRecipe(10, 5), 0)
	if !almostEqual(plan.BatchCount, 1) {
		t.Fatalf("BatchCount = %v, want 1", plan.BatchCount)
	}
	if !almostEqual(plan.Requirements[0].Needed, 2) {
		t.Fatalf("Needed = %v, want single-batch quantity", plan.Requirements[0].Needed)
	}
}

func TestBuildUnresolvedMaterialTreatedAsOutOfStock(t *testing.T) {
	t.Parallel()

	recipe := soapRecipe(10, 5)
	recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
		RecipeID:         7,
		MaterialID:       99,
		QuantityPerBatch: 1,
	})

	plan := Build(recipe, 2)
	row := plan.Requirements[2]
	if row.Sufficient {
		t.Fatalf("unresolved material should not be sufficient")
	}
	if !almostEqual(row.Shortfall, 2) {
		t.Fatalf("Shortfall = %v, want full need", row.Shortfall)
	}
	if !almostEqual(row.ShortfallCost, 0) {
		t.Fatalf("ShortfallCost = %v, want 0 with no cost to price it", row.ShortfallCost)
	}
}
