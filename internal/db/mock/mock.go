package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "eltuff/internal/log"
	"eltuff/models"
)

// New returns an in-memory sqlite database seeded with representative
// production data: a handful of raw materials, a soap recipe with overheads,
// and storefront products.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:eltuff-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.RawMaterial{},
		&models.PriceHistoryEntry{},
		&models.Product{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeOverhead{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	caustic := models.RawMaterial{
		Name:          "Caustic Soda",
		Unit:          "kg",
		CostPerUnit:   10,
		StockQuantity: 25,
		Supplier:      "Accra Chemical Supply",
		IsActive:      true,
	}
	fragrance := models.RawMaterial{
		Name:          "Lemon Fragrance Oil",
		Unit:          "L",
		CostPerUnit:   30,
		StockQuantity: 4,
		Supplier:      "Tema Aromatics",
		IsActive:      true,
	}
	sles := models.RawMaterial{
		Name:          "Sodium Lauryl Ether Sulfate",
		Unit:          "kg",
		CostPerUnit:   18.5,
		StockQuantity: 60,
		Supplier:      "Accra Chemical Supply",
		IsActive:      true,
	}
	colourant := models.RawMaterial{
		Name:          "Yellow Colourant",
		Unit:          "kg",
		CostPerUnit:   45,
		StockQuantity: 0.5,
		IsActive:      false,
	}

	for _, material := range []*models.RawMaterial{&caustic, &fragrance, &sles, &colourant} {
		if err := db.WithContext(ctx).Create(material).Error; err != nil {
			return err
		}
	}

	history := models.PriceHistoryEntry{
		MaterialID: caustic.ID,
		OldPrice:   9.2,
		NewPrice:   10,
		Note:       "supplier increase, Q3 price list",
	}
	if err := db.WithContext(ctx).Create(&history).Error; err != nil {
		return err
	}

	soap := models.Product{
		Name:        "Liquid Soap 500ml",
		Description: "Multi-purpose liquid soap with lemon fragrance.",
		Price:       2.5,
		Unit:        "bottle",
		IsActive:    true,
	}
	bleach := models.Product{
		Name:        "Household Bleach 1L",
		Description: "Chlorine bleach for laundry and surfaces.",
		Price:       3,
		Unit:        "bottle",
		IsActive:    true,
	}
	for _, product := range []*models.Product{&soap, &bleach} {
		if err := db.WithContext(ctx).Create(product).Error; err != nil {
			return err
		}
	}

	recipe := models.Recipe{
		Name:       "Liquid Soap A",
		ProductID:  &soap.ID,
		BatchYield: 50,
		YieldUnit:  "bottle",
		IsActive:   true,
	}
	if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return err
	}

	ingredients := []models.RecipeIngredient{
		{RecipeID: recipe.ID, MaterialID: caustic.ID, QuantityPerBatch: 2},
		{RecipeID: recipe.ID, MaterialID: fragrance.ID, QuantityPerBatch: 0.5},
	}
	for i := range ingredients {
		if err := db.WithContext(ctx).Create(&ingredients[i]).Error; err != nil {
			return err
		}
	}

	overhead := models.RecipeOverhead{
		RecipeID:     recipe.ID,
		Label:        "Labour",
		CostPerBatch: 15,
	}
	if err := db.WithContext(ctx).Create(&overhead).Error; err != nil {
		return err
	}

	return nil
}
