package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	applog "eltuff/internal/log"
	"eltuff/internal/views/layout"
	"eltuff/internal/views/pages"
	"eltuff/models"
)

const sessionCartKey = "cart:items"

// Home renders the storefront catalog of active products.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var products []models.Product
	if database != nil {
		if err := database.WithContext(r.Context()).
			Where("is_active = ?", true).
			Order("name asc").
			Find(&products).Error; err != nil {
			applog.Error(r.Context(), "failed to load catalog", "error", err)
			http.Error(w, "unable to load catalog", http.StatusInternalServerError)
			return
		}
	}

	renderComponent(w, r, layout.Base("Shop", pages.Catalog(products)))
}

// cartContents decodes the session cart. The cart is stored as a JSON object
// of product id to quantity, which keeps the session value a plain string.
func cartContents(r *http.Request) map[uint]int {
	cart := map[uint]int{}
	if sessionManager == nil {
		return cart
	}
	raw := sessionManager.GetString(r.Context(), sessionCartKey)
	if raw == "" {
		return cart
	}
	decoded := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		applog.Warn(r.Context(), "discarding unreadable session cart", "error", err)
		return cart
	}
	for key, quantity := range decoded {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil || quantity <= 0 {
			continue
		}
		cart[uint(id)] = quantity
	}
	return cart
}

func storeCart(r *http.Request, cart map[uint]int) {
	if sessionManager == nil {
		return
	}
	encoded := make(map[string]int, len(cart))
	for id, quantity := range cart {
		if quantity <= 0 {
			continue
		}
		encoded[strconv.FormatUint(uint64(id), 10)] = quantity
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		applog.Error(r.Context(), "failed to encode session cart", "error", err)
		return
	}
	sessionManager.Put(r.Context(), sessionCartKey, string(raw))
}

// CartShow renders the session cart priced at current product prices.
func CartShow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cart := cartContents(r)
	lines := make([]pages.CartLine, 0, len(cart))
	total := 0.0

	if database != nil && len(cart) > 0 {
		ids := make([]uint, 0, len(cart))
		for id := range cart {
			ids = append(ids, id)
		}
		var products []models.Product
		if err := database.WithContext(r.Context()).Find(&products, ids).Error; err != nil {
			applog.Error(r.Context(), "failed to load cart products", "error", err)
			http.Error(w, "unable to load cart", http.StatusInternalServerError)
			return
		}
		for _, product := range products {
			quantity := cart[product.ID]
			line := pages.CartLine{
				Product:   product,
				Quantity:  quantity,
				LineTotal: product.Price * float64(quantity),
			}
			total += line.LineTotal
			lines = append(lines, line)
		}
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].Product.Name < lines[j].Product.Name
		})
	}

	renderComponent(w, r, layout.Base("Cart", pages.Cart(lines, total)))
}

// CartAdd puts a product into the session cart and redirects back to it.
func CartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid submission", http.StatusBadRequest)
		return
	}

	productID := parseID(r.FormValue("product_id"))
	if productID == 0 || database == nil {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}

	var count int64
	if err := database.WithContext(r.Context()).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ?", productID, true).
		Count(&count).Error; err != nil || count == 0 {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}

	quantity := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity"))); err == nil && parsed > 0 {
		quantity = parsed
	}

	cart := cartContents(r)
	cart[productID] += quantity
	storeCart(r, cart)

	applog.Debug(r.Context(), "cart item added", "product", productID, "quantity", quantity)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove drops a product from the session cart.
func CartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid submission", http.StatusBadRequest)
		return
	}

	cart := cartContents(r)
	delete(cart, parseID(r.FormValue("product_id")))
	storeCart(r, cart)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
