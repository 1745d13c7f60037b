// Package ledger owns raw material records and their append-only price
// history. It is the only component that mutates material cost and stock
// fields; every cost change that actually changes the value leaves exactly
// one history entry behind.
package ledger

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	applog "eltuff/internal/log"
	"eltuff/models"
)

// ErrMaterialNotFound reports a lookup for an id with no material behind it.
var ErrMaterialNotFound = errors.New("ledger: material not found")

// Service provides material CRUD with automatic price-history capture.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// MaterialInput carries the fields accepted when creating a material.
type MaterialInput struct {
	Name          string
	Unit          string
	CostPerUnit   float64
	StockQuantity float64
	Supplier      string
}

// MaterialPatch carries a partial update. Nil fields are left untouched.
// Note annotates the price-history entry when the cost changes.
type MaterialPatch struct {
	Name          *string
	Unit          *string
	CostPerUnit   *float64
	StockQuantity *float64
	Supplier      *string
	IsActive      *bool
	Note          string
}

// CreateMaterial validates and persists a new raw material.
func (s *Service) CreateMaterial(ctx context.Context, in MaterialInput) (*models.RawMaterial, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "must not be blank"}
	}
	if in.CostPerUnit < 0 {
		return nil, &models.ValidationError{Field: "cost_per_unit", Message: "must not be negative"}
	}
	if in.StockQuantity < 0 {
		return nil, &models.ValidationError{Field: "stock_quantity", Message: "must not be negative"}
	}

	material := models.RawMaterial{
		Name:          strings.TrimSpace(in.Name),
		Unit:          strings.TrimSpace(in.Unit),
		CostPerUnit:   in.CostPerUnit,
		StockQuantity: in.StockQuantity,
		Supplier:      strings.TrimSpace(in.Supplier),
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(&material).Error; err != nil {
		return nil, &models.StorageError{Op: "create material", Err: err}
	}

	applog.Debug(ctx, "material created", "id", material.ID, "name", material.Name)
	return &material, nil
}

// GetMaterial loads a single material by id.
func (s *Service) GetMaterial(ctx context.Context, id uint) (*models.RawMaterial, error) {
	var material models.RawMaterial
	if err := s.db.WithContext(ctx).First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, &models.StorageError{Op: "load material", Err: err}
	}
	return &material, nil
}

// ListMaterials returns materials ordered by name. With activeOnly set,
// soft-deleted (inactive) materials are filtered out; existing recipes keep
// resolving them regardless.
func (s *Service) ListMaterials(ctx context.Context, activeOnly bool) ([]models.RawMaterial, error) {
	query := s.db.WithContext(ctx).Order("name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var materials []models.RawMaterial
	if err := query.Find(&materials).Error; err != nil {
		return nil, &models.StorageError{Op: "list materials", Err: err}
	}
	return materials, nil
}

// UpdateMaterial applies a patch. When the patch carries a cost different
// from the stored one, a history entry recording the old and new price is
// appended in the same transaction, before the update itself. A cost equal
// to the stored value writes no history.
func (s *Service) UpdateMaterial(ctx context.Context, id uint, patch MaterialPatch) (*models.RawMaterial, error) {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, &models.ValidationError{Field: "name", Message: "must not be blank"}
	}
	if patch.CostPerUnit != nil && *patch.CostPerUnit < 0 {
		return nil, &models.ValidationError{Field: "cost_per_unit", Message: "must not be negative"}
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		return nil, &models.ValidationError{Field: "stock_quantity", Message: "must not be negative"}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.CostPerUnit != nil && *patch.CostPerUnit != material.CostPerUnit {
			entry := models.PriceHistoryEntry{
				MaterialID: material.ID,
				OldPrice:   material.CostPerUnit,
				NewPrice:   *patch.CostPerUnit,
				Note:       strings.TrimSpace(patch.Note),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			applog.Info(ctx, "material price changed",
				"id", material.ID,
				"old", entry.OldPrice,
				"new", entry.NewPrice,
			)
		}

		if patch.Name != nil {
			material.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Unit != nil {
			material.Unit = strings.TrimSpace(*patch.Unit)
		}
		if patch.CostPerUnit != nil {
			material.CostPerUnit = *patch.CostPerUnit
		}
		if patch.StockQuantity != nil {
			material.StockQuantity = *patch.StockQuantity
		}
		if patch.Supplier != nil {
			material.Supplier = strings.TrimSpace(*patch.Supplier)
		}
		if patch.IsActive != nil {
			material.IsActive = *patch.IsActive
		}

		return tx.Save(material).Error
	})
	if err != nil {
		return nil, &models.StorageError{Op: "update material", Err: err}
	}

	return material, nil
}

// DeleteMaterial hard-deletes a material, refusing while any recipe
// ingredient still references it. Soft deletion is an IsActive patch, not a
// delete.
func (s *Service) DeleteMaterial(ctx context.Context, id uint) error {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return err
	}

	var references int64
	if err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Where("material_id = ?", id).
		Count(&references).Error; err != nil {
		return &models.StorageError{Op: "count material references", Err: err}
	}
	if references > 0 {
		return &models.ReferentialIntegrityError{
			Entity:     "material",
			ID:         id,
			References: "recipe ingredients",
		}
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(material).Error; err != nil {
		return &models.StorageError{Op: "delete material", Err: err}
	}

	applog.Info(ctx, "material deleted", "id", id, "name", material.Name)
	return nil
}

// ListPriceHistory returns a material's history entries newest-first.
func (s *Service) ListPriceHistory(ctx context.Context, materialID uint) ([]models.PriceHistoryEntry, error) {
	var entries []models.PriceHistoryEntry
	if err := s.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at desc, id desc").
		Find(&entries).Error; err != nil {
		return nil, &models.StorageError{Op: "list price history", Err: err}
	}
	return entries, nil
}
