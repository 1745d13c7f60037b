// Package recipes owns recipe records together with their ingredient and
// overhead children. Saves are atomic: children are replaced wholesale inside
// one transaction, so a recipe can never be left with a partial ingredient
// set.
package recipes

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	applog "eltuff/internal/log"
	"eltuff/models"
)

// ErrRecipeNotFound reports a lookup for an id with no recipe behind it.
var ErrRecipeNotFound = errors.New("recipes: recipe not found")

// Store provides atomic CRUD for recipes with their children.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store bound to the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RecipeInput carries the recipe's own fields for a save.
type RecipeInput struct {
	Name       string
	ProductID  *uint
	BatchYield float64
	YieldUnit  string
	IsActive   *bool
}

// IngredientInput is one submitted ingredient row. Rows without a material or
// with a non-positive quantity are dropped before validation; only fully
// specified rows count toward the minimum of one.
type IngredientInput struct {
	MaterialID       uint
	QuantityPerBatch float64
}

// OverheadInput is one submitted overhead row.
type OverheadInput struct {
	Label        string
	CostPerBatch float64
}

// FilterIngredients drops rows that do not name a material or that carry a
// non-positive quantity. The drop is silent and intentional: partially filled
// editor rows never reach the database.
func FilterIngredients(inputs []IngredientInput) []IngredientInput {
	kept := make([]IngredientInput, 0, len(inputs))
	for _, in := range inputs {
		if in.MaterialID == 0 || in.QuantityPerBatch <= 0 {
			continue
		}
		kept = append(kept, in)
	}
	return kept
}

// Save creates (id == 0) or updates a recipe as one atomic unit. On update the
// full ingredient and overhead sets are replaced: delete-all-then-insert, not
// an incremental diff.
func (s *Store) Save(ctx context.Context, id uint, in RecipeInput, ingredients []IngredientInput, overheads []OverheadInput) (*models.Recipe, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "must not be blank"}
	}
	if in.BatchYield <= 0 {
		return nil, &models.ValidationError{Field: "batch_yield", Message: "must be positive"}
	}

	kept := FilterIngredients(ingredients)
	if len(kept) == 0 {
		return nil, &models.ValidationError{Field: "ingredients", Message: "at least one ingredient with a material and a positive quantity is required"}
	}
	for _, overhead := range overheads {
		if overhead.CostPerBatch < 0 {
			return nil, &models.ValidationError{Field: "overheads", Message: "cost per batch must not be negative"}
		}
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id != 0 {
			if err := tx.First(&recipe, id).Error; err != nil {
				return err
			}
		}

		recipe.Name = strings.TrimSpace(in.Name)
		recipe.ProductID = in.ProductID
		recipe.BatchYield = in.BatchYield
		recipe.YieldUnit = strings.TrimSpace(in.YieldUnit)
		if in.IsActive != nil {
			recipe.IsActive = *in.IsActive
		} else if id == 0 {
			recipe.IsActive = true
		}

		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if id != 0 {
			if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeOverhead{}).Error; err != nil {
				return err
			}
		}

		for _, ing := range kept {
			row := models.RecipeIngredient{
				RecipeID:         recipe.ID,
				MaterialID:       ing.MaterialID,
				QuantityPerBatch: ing.QuantityPerBatch,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, overhead := range overheads {
			label := strings.TrimSpace(overhead.Label)
			if label == "" {
				continue
			}
			row := models.RecipeOverhead{
				RecipeID:     recipe.ID,
				Label:        label,
				CostPerBatch: overhead.CostPerBatch,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, &models.StorageError{Op: "save recipe", Err: err}
	}

	applog.Debug(ctx, "recipe saved", "id", recipe.ID, "name", recipe.Name, "ingredients", len(kept))
	return s.Get(ctx, recipe.ID)
}

// Get loads a recipe with its children and each ingredient's material.
func (s *Store) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).
		Preload("Ingredients.Material").
		Preload("Overheads").
		Preload("Product").
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, &models.StorageError{Op: "load recipe", Err: err}
	}
	return &recipe, nil
}

// List returns recipes ordered by name, optionally active ones only.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Order("name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, &models.StorageError{Op: "list recipes", Err: err}
	}
	return recipes, nil
}

// Delete removes a recipe and cascades to its ingredient and overhead rows.
func (s *Store) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipe_id = ?", id).Delete(&models.RecipeOverhead{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&recipe).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return &models.StorageError{Op: "delete recipe", Err: err}
	}

	applog.Info(ctx, "recipe deleted", "id", id)
	return nil
}
