package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"eltuff/models"
)

// CartLine is one product entry in the session cart, priced at the product's
// current storefront price.
type CartLine struct {
	Product   models.Product
	Quantity  int
	LineTotal float64
}

// FormatAmount renders a raw decimal for display. The engine returns plain
// numbers; formatting happens only at this edge.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Catalog renders the active product grid.
func Catalog(products []models.Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="catalog"><h2>Products</h2>`); err != nil {
			return err
		}
		if len(products) == 0 {
			if _, err := io.WriteString(w, `<p>No products are available right now.</p></section>`); err != nil {
				return err
			}
			return nil
		}
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, product := range products {
			if _, err := fmt.Fprintf(w,
				`<li><h3>%s</h3><p>%s</p><p>GHS %s / %s</p><form method="post" action="/cart/add"><input type="hidden" name="product_id" value="%d"><input type="number" name="quantity" value="1" min="1"><button type="submit">Add to cart</button></form></li>`,
				html.EscapeString(product.Name),
				html.EscapeString(product.Description),
				FormatAmount(product.Price),
				html.EscapeString(product.Unit),
				product.ID,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></section>`)
		return err
	})
}

// Cart renders the session cart with line totals and a grand total.
func Cart(lines []CartLine, total float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="cart"><h2>Your Cart</h2>`); err != nil {
			return err
		}
		if len(lines) == 0 {
			_, err := io.WriteString(w, `<p>Your cart is empty.</p></section>`)
			return err
		}
		if _, err := io.WriteString(w, `<table><thead><tr><th>Product</th><th>Qty</th><th>Line total</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%d</td><td>GHS %s</td><td><form method="post" action="/cart/remove"><input type="hidden" name="product_id" value="%d"><button type="submit">Remove</button></form></td></tr>`,
				html.EscapeString(line.Product.Name),
				line.Quantity,
				FormatAmount(line.LineTotal),
				line.Product.ID,
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</tbody></table><p>Total: GHS %s</p></section>`, FormatAmount(total))
		return err
	})
}
