package models

import "time"

// PriceHistoryEntry records one change to a material's cost per unit.
// Entries are append-only: they are never updated or deleted, and the ledger
// writes one whenever a cost edit lands with a value different from the
// stored one.
type PriceHistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MaterialID uint      `gorm:"not null;index" json:"material_id"`
	OldPrice   float64   `gorm:"type:decimal(12,4);not null" json:"old_price"`
	NewPrice   float64   `gorm:"type:decimal(12,4);not null" json:"new_price"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
