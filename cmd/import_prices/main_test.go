package main

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eltuff/internal/ledger"
	"eltuff/models"
)

func TestReadCSVQuotes(t *testing.T) {
	input := strings.NewReader(`material,unit cost
Caustic Soda,12.50
Lemon Fragrance Oil , 28
,5
Broken Row
SLES,not a number
`)
	quotes, err := readCSVQuotes(input)
	if err != nil {
		t.Fatalf("readCSVQuotes returned error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected two quotes, got %+v", quotes)
	}
	if quotes[0].Name != "Caustic Soda" || quotes[0].Cost != 12.5 {
		t.Fatalf("unexpected first quote: %+v", quotes[0])
	}
	if quotes[1].Name != "Lemon Fragrance Oil" || quotes[1].Cost != 28 {
		t.Fatalf("unexpected second quote: %+v", quotes[1])
	}
}

func TestParseQuoteLine(t *testing.T) {
	cases := []struct {
		line string
		want priceQuote
		ok   bool
	}{
		{"Caustic Soda 12.50", priceQuote{Name: "Caustic Soda", Cost: 12.5}, true},
		{"Lemon Fragrance Oil: GHS 28", priceQuote{Name: "Lemon Fragrance Oil", Cost: 28}, true},
		{"SLES ........ 18.25", priceQuote{Name: "SLES", Cost: 18.25}, true},
		{"Supplier Price List", priceQuote{}, false},
		{"", priceQuote{}, false},
		{"42", priceQuote{}, false},
	}
	for _, tc := range cases {
		got, ok := parseQuoteLine(tc.line)
		if ok != tc.ok {
			t.Fatalf("parseQuoteLine(%q) ok = %v, want %v", tc.line, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("parseQuoteLine(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestApplyQuotesWritesHistory(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.RawMaterial{}, &models.PriceHistoryEntry{}, &models.RecipeIngredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	material := models.RawMaterial{Name: "Caustic Soda", Unit: "kg", CostPerUnit: 10, IsActive: true}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}

	ctx := context.Background()
	quotes := []priceQuote{
		{Name: "caustic soda", Cost: 12.5},
		{Name: "Caustic Soda", Cost: 12.5},
		{Name: "Unknown Stuff", Cost: 4},
	}
	summary, err := applyQuotes(ctx, db, ledger.NewService(db), quotes, false, "september list")
	if err != nil {
		t.Fatalf("applyQuotes returned error: %v", err)
	}
	if summary.Updated != 1 || summary.Unchanged != 1 || summary.Unmatched != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	var reloaded models.RawMaterial
	if err := db.First(&reloaded, material.ID).Error; err != nil {
		t.Fatalf("failed to reload material: %v", err)
	}
	if reloaded.CostPerUnit != 12.5 {
		t.Fatalf("expected cost 12.5, got %v", reloaded.CostPerUnit)
	}

	var history []models.PriceHistoryEntry
	if err := db.Where("material_id = ?", material.ID).Find(&history).Error; err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	if history[0].OldPrice != 10 || history[0].NewPrice != 12.5 || history[0].Note != "september list" {
		t.Fatalf("unexpected history entry: %+v", history[0])
	}
}

func TestApplyQuotesDryRunLeavesDataAlone(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&models.RawMaterial{}, &models.PriceHistoryEntry{}, &models.RecipeIngredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	material := models.RawMaterial{Name: "SLES", Unit: "kg", CostPerUnit: 18, IsActive: true}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("failed to create material: %v", err)
	}

	summary, err := applyQuotes(context.Background(), db, ledger.NewService(db), []priceQuote{{Name: "SLES", Cost: 20}}, true, "")
	if err != nil {
		t.Fatalf("applyQuotes returned error: %v", err)
	}
	if summary.Updated != 1 {
		t.Fatalf("expected one planned update, got %+v", summary)
	}

	var reloaded models.RawMaterial
	if err := db.First(&reloaded, material.ID).Error; err != nil {
		t.Fatalf("failed to reload material: %v", err)
	}
	if reloaded.CostPerUnit != 18 {
		t.Fatalf("expected dry run to leave cost at 18, got %v", reloaded.CostPerUnit)
	}
}
