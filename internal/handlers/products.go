package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	applog "eltuff/internal/log"
	"eltuff/models"
)

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	IsActive    *bool   `json:"is_active"`
}

// ProductResource handles CRUD for sellable storefront products.
func ProductResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "product request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/products")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listProducts(w, r)
		case http.MethodPost:
			createProduct(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	productID := parseID(path)
	if productID == 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showProduct(w, r, productID)
	case http.MethodPut:
		updateProduct(w, r, productID)
	case http.MethodDelete:
		deleteProduct(w, r, productID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listProducts(w http.ResponseWriter, r *http.Request) {
	query := database.WithContext(r.Context()).Order("name asc")
	if r.URL.Query().Get("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		applog.Error(r.Context(), "failed to list products", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Price < 0 {
		writeJSONError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	product := models.Product{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Price:       payload.Price,
		Unit:        strings.TrimSpace(payload.Unit),
		IsActive:    true,
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	if err := database.WithContext(r.Context()).Create(&product).Error; err != nil {
		applog.Error(r.Context(), "failed to create product", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func showProduct(w http.ResponseWriter, r *http.Request, productID uint) {
	var product models.Product
	if err := database.WithContext(r.Context()).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load product", "error", err, "id", productID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func updateProduct(w http.ResponseWriter, r *http.Request, productID uint) {
	var product models.Product
	if err := database.WithContext(r.Context()).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load product", "error", err, "id", productID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load product")
		return
	}

	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Price < 0 {
		writeJSONError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	product.Name = strings.TrimSpace(payload.Name)
	product.Description = strings.TrimSpace(payload.Description)
	product.Price = payload.Price
	product.Unit = strings.TrimSpace(payload.Unit)
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	if err := database.WithContext(r.Context()).Save(&product).Error; err != nil {
		applog.Error(r.Context(), "failed to update product", "error", err, "id", productID)
		writeJSONError(w, http.StatusInternalServerError, "unable to update product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func deleteProduct(w http.ResponseWriter, r *http.Request, productID uint) {
	// Recipes keep a weak link to their product; clear it rather than block
	// the delete.
	err := database.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).
			Where("product_id = ?", productID).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Product{}, productID).Error
	})
	if err != nil {
		applog.Error(r.Context(), "failed to delete product", "error", err, "id", productID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
