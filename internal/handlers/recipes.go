package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"eltuff/internal/costing"
	applog "eltuff/internal/log"
	"eltuff/internal/planner"
	"eltuff/internal/recipes"
	"eltuff/models"
)

type recipeIngredientRequest struct {
	MaterialID       uint    `json:"material_id"`
	QuantityPerBatch float64 `json:"quantity_per_batch"`
}

type recipeOverheadRequest struct {
	Label        string  `json:"label"`
	CostPerBatch float64 `json:"cost_per_batch"`
}

type recipeSaveRequest struct {
	Name        string                    `json:"name"`
	ProductID   *uint                     `json:"product_id"`
	BatchYield  float64                   `json:"batch_yield"`
	YieldUnit   string                    `json:"yield_unit"`
	IsActive    *bool                     `json:"is_active"`
	Ingredients []recipeIngredientRequest `json:"ingredients"`
	Overheads   []recipeOverheadRequest   `json:"overheads"`
}

// RecipeResource handles recipe CRUD plus the costing and MRP projections
// nested under a recipe.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if recipeStore == nil {
		applog.Debug(r.Context(), "recipe request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			saveRecipe(w, r, 0)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	recipeID := parseID(segments[0])
	if recipeID == 0 {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 2 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch segments[1] {
		case "costing":
			recipeCosting(w, r, recipeID)
		case "mrp":
			recipeMRP(w, r, recipeID)
		default:
			http.NotFound(w, r)
		}
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, recipeID)
	case http.MethodPut:
		saveRecipe(w, r, recipeID)
	case http.MethodDelete:
		deleteRecipe(w, r, recipeID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	results, err := recipeStore.List(r.Context(), activeOnly)
	if err != nil {
		applog.Error(r.Context(), "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func showRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, err := recipeStore.Get(r.Context(), recipeID)
	if err != nil {
		if errors.Is(err, recipes.ErrRecipeNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load recipe", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func saveRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	var payload recipeSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ingredients := make([]recipes.IngredientInput, 0, len(payload.Ingredients))
	for _, ingredient := range payload.Ingredients {
		ingredients = append(ingredients, recipes.IngredientInput{
			MaterialID:       ingredient.MaterialID,
			QuantityPerBatch: ingredient.QuantityPerBatch,
		})
	}
	overheads := make([]recipes.OverheadInput, 0, len(payload.Overheads))
	for _, overhead := range payload.Overheads {
		overheads = append(overheads, recipes.OverheadInput{
			Label:        overhead.Label,
			CostPerBatch: overhead.CostPerBatch,
		})
	}

	recipe, err := recipeStore.Save(r.Context(), recipeID, recipes.RecipeInput{
		Name:       payload.Name,
		ProductID:  payload.ProductID,
		BatchYield: payload.BatchYield,
		YieldUnit:  payload.YieldUnit,
		IsActive:   payload.IsActive,
	}, ingredients, overheads)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, recipes.ErrRecipeNotFound):
			http.NotFound(w, r)
		case errors.As(err, &validationErr):
			writeJSONError(w, http.StatusBadRequest, validationErr.Error())
		default:
			applog.Error(r.Context(), "failed to save recipe", "error", err, "id", recipeID)
			writeJSONError(w, http.StatusInternalServerError, "unable to save recipe")
		}
		return
	}

	status := http.StatusOK
	if recipeID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, recipe)
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	if err := recipeStore.Delete(r.Context(), recipeID); err != nil {
		if errors.Is(err, recipes.ErrRecipeNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to delete recipe", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type costingResponse struct {
	costing.PricingResult
	Warnings []string `json:"warnings"`
}

// recipeCosting evaluates the pricing calculator for query-supplied inputs.
// sell_price drives when both it and markup_pct are present.
func recipeCosting(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, err := recipeStore.Get(r.Context(), recipeID)
	if err != nil {
		if errors.Is(err, recipes.ErrRecipeNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load recipe for costing", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	calc := costing.NewCalculator(costing.Compute(*recipe))
	if batchCount, ok := parseFloatParam(r, "batch_count"); ok {
		calc.SetBatchCount(batchCount)
	}
	if fixedCosts, ok := parseFloatParam(r, "fixed_costs"); ok {
		calc.SetAdditionalFixedCosts(fixedCosts)
	}
	if markup, ok := parseFloatParam(r, "markup_pct"); ok {
		calc.SetMarkupPct(markup)
	}
	if sellPrice, ok := parseFloatParam(r, "sell_price"); ok {
		calc.SetSellPrice(sellPrice)
	}

	result := calc.Result()
	response := costingResponse{PricingResult: result, Warnings: []string{}}
	if result.SellingBelowCost {
		response.Warnings = append(response.Warnings, "selling below cost")
	}
	if result.BreakEven == nil {
		response.Warnings = append(response.Warnings, "break-even undefined at current price")
	}

	writeJSON(w, http.StatusOK, response)
}

func recipeMRP(w http.ResponseWriter, r *http.Request, recipeID uint) {
	recipe, err := recipeStore.Get(r.Context(), recipeID)
	if err != nil {
		if errors.Is(err, recipes.ErrRecipeNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load recipe for mrp", "error", err, "id", recipeID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	batchCount, _ := parseFloatParam(r, "batch_count")
	writeJSON(w, http.StatusOK, planner.Build(*recipe, batchCount))
}
