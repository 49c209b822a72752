package v1

import (
	"net/http"

	"storekit-backend/internal/delivery/http/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Shipping   *ShippingHandler
	Courier    *CourierHandler
	Recovery   *RecoveryHandler
	Health     *HealthHandler
	CronSecret string
}

func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Must chain: AuthMiddleware -> StoreAdminMiddleware -> Handler
	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.StoreAdminMiddleware(fn))
	}
	cron := middleware.CronSecretMiddleware(h.CronSecret)

	// Storefront (public)
	mux.HandleFunc("POST /api/v1/stores/{storeId}/shipping/quote", h.Shipping.Quote)
	mux.HandleFunc("GET /api/v1/stores/{storeId}/shipping/availability", h.Shipping.Availability)
	mux.HandleFunc("POST /api/v1/stores/{storeId}/carts", h.Recovery.SaveCart)
	mux.HandleFunc("GET /api/v1/recover/{token}", h.Recovery.GetRecovery)
	mux.HandleFunc("POST /api/v1/recover/{token}/unsubscribe", h.Recovery.Unsubscribe)

	// Admin shipping config
	mux.Handle("GET /api/v1/admin/shipping/config", admin(h.Shipping.GetConfig))
	mux.Handle("PUT /api/v1/admin/shipping/config", admin(h.Shipping.UpdateConfig))
	mux.Handle("POST /api/v1/admin/shipping/config/validate", admin(h.Shipping.ValidateConfig))

	// Admin couriers
	mux.Handle("GET /api/v1/admin/couriers", admin(h.Courier.ListProviders))
	mux.Handle("POST /api/v1/admin/couriers/rates", admin(h.Courier.CompareRates))
	mux.Handle("POST /api/v1/admin/couriers/{provider}/rates", admin(h.Courier.GetRates))
	mux.Handle("POST /api/v1/admin/couriers/{provider}/shipments", admin(h.Courier.CreateShipment))
	mux.Handle("GET /api/v1/admin/couriers/{provider}/track/{awb}", admin(h.Courier.TrackShipment))
	mux.Handle("POST /api/v1/admin/couriers/{provider}/cancel/{awb}", admin(h.Courier.CancelShipment))
	mux.Handle("POST /api/v1/admin/couriers/{provider}/labels/{shipmentId}", admin(h.Courier.GenerateLabel))
	mux.Handle("GET /api/v1/admin/couriers/{provider}/serviceability", admin(h.Courier.Serviceability))
	mux.Handle("POST /api/v1/admin/couriers/{provider}/validate", admin(h.Courier.ValidateCredentials))

	// Scheduler
	mux.Handle("POST /api/v1/cron/abandoned-carts", cron(http.HandlerFunc(h.Recovery.Sweep)))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/health", h.Health.Health)
	mux.HandleFunc("GET /health", h.Health.Health)

	return mux
}
