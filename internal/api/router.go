package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/marketplace/internal/api/middleware"
	"github.com/example/marketplace/internal/auth"
)

// RouterConfig carries the handler groups wired into the router.
type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	ChatHandlers *ChatHandlers
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Auth(cfg.JWTService)
	sellerOnly := middleware.RequireRole(auth.RoleSeller, auth.RoleAdmin)

	h := cfg.Handlers

	// Health
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "marketplace-api"})
	})

	// Auth
	mux.HandleFunc("/api/auth/register", methodHandler(http.MethodPost, cfg.AuthHandlers.Register))
	mux.HandleFunc("/api/auth/login", methodHandler(http.MethodPost, cfg.AuthHandlers.Login))
	mux.Handle("/api/auth/me", authed(methodHandler(http.MethodGet, cfg.AuthHandlers.Me)))

	// Products
	createProduct := authed(sellerOnly(http.HandlerFunc(h.CreateProduct)))
	updateProduct := authed(sellerOnly(http.HandlerFunc(h.UpdateProduct)))
	deleteProduct := authed(sellerOnly(http.HandlerFunc(h.DeleteProduct)))

	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.ListProducts(w, r)
		case http.MethodPost:
			createProduct.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/categories" {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.GetCategories(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			h.GetProduct(w, r)
		case http.MethodPut:
			updateProduct.ServeHTTP(w, r)
		case http.MethodDelete:
			deleteProduct.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Cart
	mux.Handle("/api/cart", authed(methodHandler(http.MethodGet, h.GetCart)))
	mux.Handle("/api/cart/add", authed(methodHandler(http.MethodPost, h.AddToCart)))
	mux.Handle("/api/cart/update/", authed(methodHandler(http.MethodPut, h.UpdateCartItem)))
	mux.Handle("/api/cart/remove/", authed(methodHandler(http.MethodDelete, h.RemoveCartItem)))

	// Orders
	mux.Handle("/api/orders", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetOrders(w, r)
		case http.MethodPost:
			h.PlaceOrder(w, r)
		default:
			methodNotAllowed(w)
		}
	})))

	updateStatus := authed(sellerOnly(http.HandlerFunc(h.UpdateOrderStatus)))
	getOrder := authed(http.HandlerFunc(h.GetOrder))
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPut:
			updateStatus.ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			getOrder.ServeHTTP(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Chat
	mux.HandleFunc("/api/chat", methodHandler(http.MethodPost, cfg.ChatHandlers.Chat))

	return withLogging(mux)
}

func methodHandler(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w)
			return
		}
		handler(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
