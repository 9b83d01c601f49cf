package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// New creates the HTTP router. Procedures are exposed tRPC-style as flat
// paths under /api: queries are GET with query-string inputs, mutations are
// POST with a JSON body. Role gates live in the handlers; the session
// middleware only resolves the identity.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	sessions *auth.Sessions,
	users service.UserService,
	allowedOrigin string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no session required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/auth.me", authHandler.Me)
	mux.HandleFunc("/api/auth.logout", authHandler.Logout)

	mux.HandleFunc("/api/products.list", productHandler.List)
	mux.HandleFunc("/api/products.getById", productHandler.GetByID)
	mux.HandleFunc("/api/products.create", productHandler.Create)
	mux.HandleFunc("/api/products.update", productHandler.Update)
	mux.HandleFunc("/api/products.delete", productHandler.Delete)

	mux.HandleFunc("/api/cart.getItems", cartHandler.GetItems)
	mux.HandleFunc("/api/cart.addItem", cartHandler.AddItem)
	mux.HandleFunc("/api/cart.updateItem", cartHandler.UpdateItem)
	mux.HandleFunc("/api/cart.removeItem", cartHandler.RemoveItem)
	mux.HandleFunc("/api/cart.clear", cartHandler.Clear)

	mux.HandleFunc("/api/orders.create", orderHandler.Create)
	mux.HandleFunc("/api/orders.getMyOrders", orderHandler.GetMyOrders)
	mux.HandleFunc("/api/orders.getById", orderHandler.GetByID)
	mux.HandleFunc("/api/orders.getItems", orderHandler.GetItems)
	mux.HandleFunc("/api/orders.updateStatus", orderHandler.UpdateStatus)
	mux.HandleFunc("/api/orders.getAllOrders", orderHandler.GetAllOrders)

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS -> Session
	var h http.Handler = mux
	h = middleware.Session(sessions, users, logger)(h)
	h = middleware.CORS(allowedOrigin)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CorrelationID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
