// Package metrics expõe os coletores Prometheus do GoStore.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests conta as requisições por método, rota e status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostore_http_requests_total",
			Help: "Total de requisições HTTP por método, rota e status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPLatency mede a duração das requisições por rota.
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gostore_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CheckoutOutcomes conta os checkouts pelo estado terminal alcançado.
	CheckoutOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostore_checkout_outcomes_total",
			Help: "Checkouts por estado final e forma de pagamento",
		},
		[]string{"state", "payment_method"},
	)

	// CatalogFetches conta as buscas ao catálogo remoto por origem (cache/remote) e resultado.
	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostore_catalog_fetches_total",
			Help: "Buscas de catálogo por recurso, origem e resultado",
		},
		[]string{"resource", "source", "result"},
	)

	// CatalogSkippedEntries conta entradas de atributo/variante descartadas na ingestão.
	CatalogSkippedEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostore_catalog_skipped_entries_total",
			Help: "Entradas mal formadas descartadas na ingestão do catálogo",
		},
		[]string{"field"},
	)

	// PaymentBreakerState expõe o estado do circuit breaker do gateway (0 fechado, 1 meio-aberto, 2 aberto).
	PaymentBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gostore_payment_breaker_state",
			Help: "Estado do circuit breaker do gateway de pagamento",
		},
	)

	// CouponApplications conta as tentativas de aplicar cupom por resultado.
	CouponApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostore_coupon_applications_total",
			Help: "Aplicações de cupom por resultado",
		},
		[]string{"result"},
	)
)
