package handlers

import (
	"net/http"

	applog "eltuff/internal/log"
	"eltuff/internal/views/layout"
	"eltuff/internal/views/pages"
	"eltuff/models"
)

// lowStockThreshold marks active materials the dashboard flags for reorder.
const lowStockThreshold = 1.0

// Dashboard renders the operations overview page.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	overview := pages.Overview{}

	if err := database.WithContext(ctx).Model(&models.RawMaterial{}).Count(&overview.MaterialCount).Error; err != nil {
		applog.Error(ctx, "failed to count materials", "error", err)
	}
	if err := database.WithContext(ctx).Model(&models.Recipe{}).Count(&overview.RecipeCount).Error; err != nil {
		applog.Error(ctx, "failed to count recipes", "error", err)
	}
	if err := database.WithContext(ctx).Model(&models.Product{}).Count(&overview.ProductCount).Error; err != nil {
		applog.Error(ctx, "failed to count products", "error", err)
	}
	if err := database.WithContext(ctx).
		Where("is_active = ? AND stock_quantity < ?", true, lowStockThreshold).
		Order("stock_quantity asc").
		Find(&overview.LowStock).Error; err != nil {
		applog.Error(ctx, "failed to load low stock materials", "error", err)
	}

	renderComponent(w, r, layout.Base("Operations", pages.Dashboard(overview)))
}
