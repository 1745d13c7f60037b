package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"eltuff/models"
)

func seedSoapRecipe(t *testing.T, db *gorm.DB) (models.Recipe, models.RawMaterial, models.RawMaterial) {
	t.Helper()
	caustic := models.RawMaterial{Name: "Caustic Soda", Unit: "kg", CostPerUnit: 10, StockQuantity: 25, IsActive: true}
	fragrance := models.RawMaterial{Name: "Lemon Fragrance Oil", Unit: "L", CostPerUnit: 30, StockQuantity: 4, IsActive: true}
	if err := db.Create(&caustic).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	if err := db.Create(&fragrance).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	recipe := models.Recipe{
		Name:       "Liquid Soap A",
		BatchYield: 50,
		YieldUnit:  "bottle",
		IsActive:   true,
		Ingredients: []models.RecipeIngredient{
			{MaterialID: caustic.ID, QuantityPerBatch: 2},
			{MaterialID: fragrance.ID, QuantityPerBatch: 0.5},
		},
		Overheads: []models.RecipeOverhead{
			{Label: "Labour", CostPerBatch: 15},
		},
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe, caustic, fragrance
}

func TestRecipeResourceSaveAndShow(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)

	material := models.RawMaterial{Name: "SLES", Unit: "kg", CostPerUnit: 18, IsActive: true}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}

	payload := fmt.Sprintf(`{
		"name": "Shower Gel",
		"batch_yield": 40,
		"yield_unit": "bottle",
		"ingredients": [{"material_id": %d, "quantity_per_batch": 3}],
		"overheads": [{"label": "Packaging", "cost_per_batch": 8}]
	}`, material.ID)
	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes", strings.NewReader(payload))
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode recipe: %v", err)
	}
	if created.ID == 0 || len(created.Ingredients) != 1 || len(created.Overheads) != 1 {
		t.Fatalf("unexpected created recipe: %+v", created)
	}
	if created.Ingredients[0].Material == nil || created.Ingredients[0].Material.Name != "SLES" {
		t.Fatalf("expected ingredient material to be resolved: %+v", created.Ingredients[0])
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/app/api/recipes/%d", created.ID), nil)
	w = httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for show, got %d", w.Code)
	}
}

func TestRecipeResourceSaveValidation(t *testing.T) {
	_, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)

	payload := `{"name": "Broken", "batch_yield": 0, "yield_unit": "bottle", "ingredients": [{"material_id": 1, "quantity_per_batch": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes", strings.NewReader(payload))
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for zero yield, got %d", w.Code)
	}

	payload = `{"name": "Empty", "batch_yield": 10, "yield_unit": "bottle", "ingredients": []}`
	req = httptest.NewRequest(http.MethodPost, "/app/api/recipes", strings.NewReader(payload))
	w = httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for no ingredients, got %d", w.Code)
	}
}

func TestRecipeResourceCosting(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)
	recipe, _, _ := seedSoapRecipe(t, db)

	url := fmt.Sprintf("/app/api/recipes/%d/costing?batch_count=2&markup_pct=50", recipe.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response costingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode costing response: %v", err)
	}
	if response.Breakdown.TotalBatchCost != 50 || response.Breakdown.CostPerUnit != 1 {
		t.Fatalf("unexpected breakdown: %+v", response.Breakdown)
	}
	if response.Run.TotalUnits != 100 || response.Run.TotalCost != 100 {
		t.Fatalf("unexpected run totals: %+v", response.Run)
	}
	if math.Abs(response.SellPrice-1.5) > 1e-9 || math.Abs(response.TotalProfit-50) > 1e-9 {
		t.Fatalf("unexpected pricing: sell=%v profit=%v", response.SellPrice, response.TotalProfit)
	}
	if response.BreakEven == nil {
		t.Fatalf("expected a defined break-even")
	}
	if math.Abs(response.BreakEven.Units-200) > 1e-9 || response.BreakEven.BatchesNeeded != 4 {
		t.Fatalf("unexpected break-even: %+v", response.BreakEven)
	}
	if len(response.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", response.Warnings)
	}
}

func TestRecipeResourceCostingSellPriceDrives(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)
	recipe, _, _ := seedSoapRecipe(t, db)

	url := fmt.Sprintf("/app/api/recipes/%d/costing?markup_pct=50&sell_price=2", recipe.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var response costingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode costing response: %v", err)
	}
	if math.Abs(response.MarkupPct-100) > 1e-9 {
		t.Fatalf("expected sell price to drive markup to 100, got %v", response.MarkupPct)
	}
}

func TestRecipeResourceCostingBelowCostWarns(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)
	recipe, _, _ := seedSoapRecipe(t, db)

	url := fmt.Sprintf("/app/api/recipes/%d/costing?sell_price=0.8", recipe.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 even below cost, got %d", w.Code)
	}
	var response costingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode costing response: %v", err)
	}
	if !response.SellingBelowCost || response.BreakEven != nil {
		t.Fatalf("expected below-cost state with undefined break-even: %+v", response.PricingResult)
	}
	if len(response.Warnings) != 2 {
		t.Fatalf("expected both warnings, got %v", response.Warnings)
	}
}

func TestRecipeResourceMRP(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)
	recipe, _, fragrance := seedSoapRecipe(t, db)

	url := fmt.Sprintf("/app/api/recipes/%d/mrp?batch_count=10", recipe.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan struct {
		RecipeID     uint `json:"recipe_id"`
		Requirements []struct {
			MaterialID    uint    `json:"material_id"`
			Needed        float64 `json:"needed"`
			Shortfall     float64 `json:"shortfall"`
			ShortfallCost float64 `json:"shortfall_cost"`
			Sufficient    bool    `json:"sufficient"`
		} `json:"requirements"`
		TotalProcurementCost float64 `json:"total_procurement_cost"`
		FullyStocked         bool    `json:"fully_stocked"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}
	if plan.FullyStocked {
		t.Fatalf("expected a shortfall at ten batches")
	}
	if math.Abs(plan.TotalProcurementCost-30) > 1e-9 {
		t.Fatalf("expected procurement cost 30, got %v", plan.TotalProcurementCost)
	}
	found := false
	for _, requirement := range plan.Requirements {
		if requirement.MaterialID == fragrance.ID {
			found = true
			if requirement.Needed != 5 || requirement.Shortfall != 1 || requirement.Sufficient {
				t.Fatalf("unexpected fragrance requirement: %+v", requirement)
			}
		}
	}
	if !found {
		t.Fatalf("expected fragrance requirement in plan")
	}
}

func TestRecipeResourceDelete(t *testing.T) {
	db, cleanup := withHandlerTestDatabase(t)
	t.Cleanup(cleanup)
	recipe, _, _ := seedSoapRecipe(t, db)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/app/api/recipes/%d", recipe.ID), nil)
	w := httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/app/api/recipes/%d", recipe.ID), nil)
	w = httptest.NewRecorder()
	RecipeResource(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}
