package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/metrics"
	"github.com/bhushan0206/HeartAndHands/internal/store"
	"github.com/gorilla/csrf"
)

// Routes registers the JSON API on a new mux. Checkout goes through limiter.
func Routes(db *store.Store, visitors *Visitors, limiter *RateLimiter) *http.ServeMux {
	catalog := &CatalogHandler{Store: db}
	carts := &CartHandler{Visitors: visitors}
	admin := &AdminHandler{Store: db}

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /api/portfolio", catalog.Portfolio)
	mux.HandleFunc("GET /api/products", catalog.Products)
	mux.HandleFunc("GET /api/products/{id}", catalog.Product)
	mux.HandleFunc("GET /api/creators", catalog.Creators)

	mux.HandleFunc("GET /api/cart", carts.GetCart)
	mux.HandleFunc("POST /api/cart/items", carts.AddItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", carts.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", carts.RemoveItem)
	mux.HandleFunc("POST /api/checkout", limiter.Middleware(carts.Checkout))

	mux.HandleFunc("GET /api/notifications", carts.Notifications)
	mux.HandleFunc("DELETE /api/notifications/{id}", carts.DismissNotification)

	// Admin Routes
	mux.HandleFunc("GET /api/admin/stats", admin.Dashboard)
	mux.HandleFunc("POST /api/admin/portfolio", admin.CreatePortfolioItem)
	mux.HandleFunc("PUT /api/admin/portfolio/{id}", admin.UpdatePortfolioItem)
	mux.HandleFunc("DELETE /api/admin/portfolio/{id}", admin.DeletePortfolioItem)
	mux.HandleFunc("POST /api/admin/products", admin.CreateProduct)
	mux.HandleFunc("PUT /api/admin/products/{id}", admin.UpdateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", admin.DeleteProduct)
	mux.HandleFunc("GET /api/admin/categories", admin.ListCategories)
	mux.HandleFunc("PATCH /api/admin/categories/{id}", admin.UpdateCategory)
	mux.HandleFunc("GET /api/admin/creators", admin.ListCreators)
	mux.HandleFunc("GET /api/admin/orders", admin.ListOrders)

	mux.HandleFunc("GET /api/csrf", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token": csrf.Token(r)})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.DB.PingContext(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}
