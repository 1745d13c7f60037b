package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"eltuff/models"
)

// Overview aggregates the counts and warnings shown on the operations
// dashboard landing page.
type Overview struct {
	MaterialCount int64
	RecipeCount   int64
	ProductCount  int64
	LowStock      []models.RawMaterial
}

// Dashboard renders the operations overview. Detailed material, recipe and
// costing data is served by the JSON API under /app/api.
func Dashboard(overview Overview) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section class="overview"><h2>Operations</h2><ul><li>%d raw materials</li><li>%d recipes</li><li>%d products</li></ul>`,
			overview.MaterialCount, overview.RecipeCount, overview.ProductCount,
		); err != nil {
			return err
		}
		if len(overview.LowStock) > 0 {
			if _, err := io.WriteString(w, `<h3>Low stock</h3><ul>`); err != nil {
				return err
			}
			for _, material := range overview.LowStock {
				if _, err := fmt.Fprintf(w, `<li>%s: %s %s remaining</li>`,
					html.EscapeString(material.Name),
					FormatAmount(material.StockQuantity),
					html.EscapeString(material.Unit),
				); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}
