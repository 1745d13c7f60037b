package server

import (
	"context"
	"net/http"

	"eltuff/internal/handlers"
	applog "eltuff/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/cart", handlers.CartShow)
	mux.HandleFunc("/cart/add", handlers.CartAdd)
	mux.HandleFunc("/cart/remove", handlers.CartRemove)
	applog.Debug(context.Background(), "route registered", "path", "/cart")
	mux.HandleFunc("/app", handlers.Dashboard)
	mux.HandleFunc("/app/api/materials", handlers.MaterialResource)
	mux.HandleFunc("/app/api/materials/", handlers.MaterialResource)
	mux.HandleFunc("/app/api/recipes", handlers.RecipeResource)
	mux.HandleFunc("/app/api/recipes/", handlers.RecipeResource)
	mux.HandleFunc("/app/api/products", handlers.ProductResource)
	mux.HandleFunc("/app/api/products/", handlers.ProductResource)
	applog.Debug(context.Background(), "route registered", "path", "/app")
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
