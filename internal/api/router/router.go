package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gostore/docs" // registra a especificação OpenAPI no swag

	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/order"
	"gostore/internal/api/product"
	"gostore/internal/api/session"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Session  *session.Handler
	Product  *product.Handler
	Cart     *cart.Handler
	Checkout *checkout.Handler
	Order    *order.Handler
}

// Options configura os middlewares globais.
type Options struct {
	Tokens     middleware.TokenValidator
	Cache      cache.Client
	RateLimit  int
	RatePeriod time.Duration
	Logger     logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Ordem dos middlewares globais: Observe -> RateLimiter -> mux.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuthMiddleware(opts.Tokens)

	// --- Infra ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Sessões e vitrine (públicas) ---
	mux.HandleFunc("POST /v1/sessions", h.Session.CreateSessionHandler)
	mux.HandleFunc("GET /v1/products", h.Product.ListProductsHandler)
	mux.HandleFunc("GET /v1/products/{id}", h.Product.GetProductHandler)
	mux.HandleFunc("POST /v1/products/{id}/variant", h.Product.ResolveVariantHandler)
	mux.HandleFunc("GET /v1/coupons", h.Product.ListCouponsHandler)

	// --- Carrinho (sessão obrigatória) ---
	mux.HandleFunc("GET /v1/cart", auth(h.Cart.GetCartHandler))
	mux.HandleFunc("DELETE /v1/cart", auth(h.Cart.ClearCartHandler))
	mux.HandleFunc("GET /v1/cart/summary", auth(h.Cart.SummaryHandler))
	mux.HandleFunc("POST /v1/cart/items", auth(h.Cart.AddItemHandler))
	mux.HandleFunc("PUT /v1/cart/items/{productID}", auth(h.Cart.UpdateItemHandler))
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", auth(h.Cart.RemoveItemHandler))
	mux.HandleFunc("POST /v1/cart/coupon", auth(h.Cart.ApplyCouponHandler))
	mux.HandleFunc("DELETE /v1/cart/coupon", auth(h.Cart.RemoveCouponHandler))

	// --- Checkout e pedidos ---
	mux.HandleFunc("POST /v1/checkout", auth(h.Checkout.SubmitHandler))
	mux.HandleFunc("GET /v1/orders/{id}", auth(h.Order.GetOrderHandler))

	var handler http.Handler = mux
	if opts.Cache != nil && opts.RateLimit > 0 {
		handler = middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RatePeriod, opts.Logger)(handler)
	}
	return middleware.Observe(opts.Logger)(handler)
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
