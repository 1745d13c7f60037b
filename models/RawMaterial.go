package models

import (
	"gorm.io/gorm"
)

// RawMaterial is a purchasable production input. CostPerUnit is the live
// replacement cost used by every recipe costing read; changing it is audited
// through PriceHistoryEntry.
type RawMaterial struct {
	gorm.Model
	Name          string  `gorm:"uniqueIndex;not null" json:"name"`
	Unit          string  `gorm:"not null" json:"unit"`
	CostPerUnit   float64 `gorm:"type:decimal(12,4);not null" json:"cost_per_unit"`
	StockQuantity float64 `gorm:"type:decimal(12,4);not null;default:0" json:"stock_quantity"`
	Supplier      string  `json:"supplier,omitempty"`
	IsActive      bool    `gorm:"not null;default:true" json:"is_active"`

	PriceHistory []PriceHistoryEntry `gorm:"foreignKey:MaterialID" json:"price_history,omitempty"`
}
