package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CheckoutAPI is everything the checkout routes need from the application
// layer.
type CheckoutAPI interface {
	PaystackOrderCreator
	MomoOrderCreator
	StripeIntentCreator
	StripeOrderPlacer
}

// ReconcileAPI is everything the settlement routes need.
type ReconcileAPI interface {
	PaystackVerifier
	WebhookProcessor
}

// RouterConfig carries the collaborators the HTTP surface is assembled from.
type RouterConfig struct {
	Checkout    CheckoutAPI
	Reconcile   ReconcileAPI
	Catalog     Catalog
	Orders      OrderLister
	Rates       RateSource
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.NotFound(NotFoundHandler().ServeHTTP)

	r.Get("/health", HealthHandler)
	r.Get("/api/rates", HandleRates(cfg.Rates))
	r.Get("/api/products", HandleListProducts(cfg.Catalog))
	r.Get("/api/orders", HandleListOrders(cfg.Orders))

	r.Post("/api/create-paystack-order", HandleCreatePaystackOrder(cfg.Checkout))
	r.Get("/api/paystack-callback", HandlePaystackCallback(cfg.Reconcile))
	r.Post("/api/create-momo-order", HandleCreateMomoOrder(cfg.Checkout))
	r.Post("/api/create-stripe-intent", HandleCreateStripeIntent(cfg.Checkout))
	r.Post("/api/place-stripe-order", HandlePlaceStripeOrder(cfg.Checkout))
	r.Post("/webhook", HandleWebhook(cfg.Reconcile))

	return RequestLogger(CORS(cfg.CORSOrigins, r), cfg.Logger)
}
