package layout

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Base wraps page content in the shared storefront chrome: header, nav, and
// footer. Content is any templ component.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title></head><body>`,
			html.EscapeString(title),
		); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<header><h1>ELTUFF Ideas Ventures</h1><nav><a href="/">Shop</a> <a href="/cart">Cart</a> <a href="/app">Operations</a></nav></header><main>`,
		); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main><footer><p>Made in Ghana.</p></footer></body></html>`)
		return err
	})
}
