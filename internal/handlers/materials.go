package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eltuff/internal/ledger"
	applog "eltuff/internal/log"
	"eltuff/models"
)

type materialCreateRequest struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	CostPerUnit   float64 `json:"cost_per_unit"`
	StockQuantity float64 `json:"stock_quantity"`
	Supplier      string  `json:"supplier"`
}

type materialPatchRequest struct {
	Name          *string  `json:"name"`
	Unit          *string  `json:"unit"`
	CostPerUnit   *float64 `json:"cost_per_unit"`
	StockQuantity *float64 `json:"stock_quantity"`
	Supplier      *string  `json:"supplier"`
	IsActive      *bool    `json:"is_active"`
	Note          string   `json:"note"`
}

type materialResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	CostPerUnit   float64   `json:"cost_per_unit"`
	StockQuantity float64   `json:"stock_quantity"`
	Supplier      string    `json:"supplier,omitempty"`
	IsActive      bool      `json:"is_active"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func projectMaterial(material models.RawMaterial) materialResponse {
	return materialResponse{
		ID:            material.ID,
		Name:          material.Name,
		Unit:          material.Unit,
		CostPerUnit:   material.CostPerUnit,
		StockQuantity: material.StockQuantity,
		Supplier:      material.Supplier,
		IsActive:      material.IsActive,
		UpdatedAt:     material.UpdatedAt,
	}
}

// MaterialResource handles CRUD and price-history reads for raw materials.
func MaterialResource(w http.ResponseWriter, r *http.Request) {
	if materialLedger == nil {
		applog.Debug(r.Context(), "material request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/materials")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listMaterials(w, r)
		case http.MethodPost:
			createMaterial(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	materialID := parseID(segments[0])
	if materialID == 0 {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 2 && segments[1] == "history" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		listMaterialHistory(w, r, materialID)
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showMaterial(w, r, materialID)
	case http.MethodPut, http.MethodPatch:
		updateMaterial(w, r, materialID)
	case http.MethodDelete:
		deleteMaterial(w, r, materialID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listMaterials(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	materials, err := materialLedger.ListMaterials(r.Context(), activeOnly)
	if err != nil {
		applog.Error(r.Context(), "failed to list materials", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load materials")
		return
	}

	responses := make([]materialResponse, 0, len(materials))
	for _, material := range materials {
		responses = append(responses, projectMaterial(material))
	}
	writeJSON(w, http.StatusOK, responses)
}

func createMaterial(w http.ResponseWriter, r *http.Request) {
	var payload materialCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	material, err := materialLedger.CreateMaterial(r.Context(), ledger.MaterialInput{
		Name:          payload.Name,
		Unit:          payload.Unit,
		CostPerUnit:   payload.CostPerUnit,
		StockQuantity: payload.StockQuantity,
		Supplier:      payload.Supplier,
	})
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			writeJSONError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		applog.Error(r.Context(), "failed to create material", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create material")
		return
	}

	writeJSON(w, http.StatusCreated, projectMaterial(*material))
}

func showMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	material, err := materialLedger.GetMaterial(r.Context(), materialID)
	if err != nil {
		if errors.Is(err, ledger.ErrMaterialNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load material", "error", err, "id", materialID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load material")
		return
	}
	writeJSON(w, http.StatusOK, projectMaterial(*material))
}

func updateMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	var payload materialPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	material, err := materialLedger.UpdateMaterial(r.Context(), materialID, ledger.MaterialPatch{
		Name:          payload.Name,
		Unit:          payload.Unit,
		CostPerUnit:   payload.CostPerUnit,
		StockQuantity: payload.StockQuantity,
		Supplier:      payload.Supplier,
		IsActive:      payload.IsActive,
		Note:          payload.Note,
	})
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, ledger.ErrMaterialNotFound):
			http.NotFound(w, r)
		case errors.As(err, &validationErr):
			writeJSONError(w, http.StatusBadRequest, validationErr.Error())
		default:
			applog.Error(r.Context(), "failed to update material", "error", err, "id", materialID)
			writeJSONError(w, http.StatusInternalServerError, "unable to update material")
		}
		return
	}

	writeJSON(w, http.StatusOK, projectMaterial(*material))
}

func deleteMaterial(w http.ResponseWriter, r *http.Request, materialID uint) {
	err := materialLedger.DeleteMaterial(r.Context(), materialID)
	if err != nil {
		var refErr *models.ReferentialIntegrityError
		switch {
		case errors.Is(err, ledger.ErrMaterialNotFound):
			http.NotFound(w, r)
		case errors.As(err, &refErr):
			writeJSONError(w, http.StatusConflict, refErr.Error())
		default:
			applog.Error(r.Context(), "failed to delete material", "error", err, "id", materialID)
			writeJSONError(w, http.StatusInternalServerError, "unable to delete material")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listMaterialHistory(w http.ResponseWriter, r *http.Request, materialID uint) {
	if _, err := materialLedger.GetMaterial(r.Context(), materialID); err != nil {
		if errors.Is(err, ledger.ErrMaterialNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load material", "error", err, "id", materialID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load material")
		return
	}

	entries, err := materialLedger.ListPriceHistory(r.Context(), materialID)
	if err != nil {
		applog.Error(r.Context(), "failed to list price history", "error", err, "id", materialID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load price history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
