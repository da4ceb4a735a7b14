// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/grocerec/internal/middleware"
)

// NewRouter builds the chi router.
//
// Middleware order:
//  1. RequestIDWithLogging, RealIP, Recoverer
//  2. Prometheus metrics and the performance monitor
//  3. request logging and CORS
//  4. security headers, then rate limiting and compression on /api/v1
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	if h.monitor != nil {
		r.Use(h.monitor.Middleware)
	}
	r.Use(RequestLogger())
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("no route for " + r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			r.Method+" is not allowed on "+r.URL.Path)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Probes are exempt from rate limiting.
		r.Get("/health", h.Health)
		r.Get("/health/ready", h.Ready)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Get("/products", h.Products)
			r.Get("/recommendations", h.Strategies)
			r.Route("/recommendations/{strategy}", func(r chi.Router) {
				r.Get("/", h.RecommendQuery)
				r.Post("/", h.Recommend)
				r.Get("/candidates", h.Candidates)
			})
			r.Get("/stats/performance", h.Performance)
		})
	})

	return r
}
