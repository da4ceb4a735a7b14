// Grocerec - Grocery Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/grocerec

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/grocerec/internal/logging"
	"github.com/tomtom215/grocerec/internal/middleware"
	"github.com/tomtom215/grocerec/internal/recommend"
	"github.com/tomtom215/grocerec/internal/validation"
)

// maxBodyBytes bounds recommendation request bodies.
const maxBodyBytes = 4 << 10

// Reasons reported with an empty recommendation.
const (
	ReasonProductNotFound = "product_not_found"
	ReasonIndexOutOfRange = "index_out_of_range"
)

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Candidates(ctx context.Context, strategy string) ([]recommend.Product, error)
	Catalog(ctx context.Context) ([]recommend.Product, error)
	Strategies() []string
	DataVersion(ctx context.Context) (string, error)
	CacheEnabled() bool
	GetMetrics() recommend.Metrics
}

// Handler serves the recommendation API.
type Handler struct {
	engine    Recommender
	monitor   *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// NewHandler creates the API handlers. monitor may be nil.
func NewHandler(engine Recommender, monitor *middleware.PerformanceMonitor, version string) *Handler {
	return &Handler{
		engine:    engine,
		monitor:   monitor,
		version:   version,
		startTime: time.Now(),
	}
}

// ProductRef is a product reference as sent by clients: a product id as a
// JSON string or number, or the "refresh" sentinel.
type ProductRef string

// UnmarshalJSON accepts "123", 123 and "refresh".
func (p *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ProductRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("product_id must be a string or a number")
	}
	*p = ProductRef(n.String())
	return nil
}

// RecommendRequest is the body of a recommendation request. An empty
// product_id selects nothing, which only the pearson strategy accepts.
// The selected product is already returned as the cart, so it is left out
// of the items unless exclude_self is explicitly false.
type RecommendRequest struct {
	ProductID   ProductRef `json:"product_id" validate:"omitempty,product_ref"`
	ExcludeSelf *bool      `json:"exclude_self,omitempty"`
}

// excludeSelf reports whether the query product is dropped from the items.
func (req *RecommendRequest) excludeSelf() bool {
	return req.ExcludeSelf == nil || *req.ExcludeSelf
}

// RecommendationData is the payload of a recommendation response. Cart is
// the selected product. Reason is set when no recommendation is available.
type RecommendationData struct {
	Strategy    string              `json:"strategy"`
	Cart        *recommend.Product  `json:"cart"`
	Items       []recommend.Product `json:"items"`
	Reason      string              `json:"reason,omitempty"`
	Message     string              `json:"message,omitempty"`
	Refreshed   bool                `json:"refreshed,omitempty"`
	DataVersion string              `json:"data_version,omitempty"`
	CacheHit    bool                `json:"cache_hit"`
	LatencyMS   int64               `json:"latency_ms"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version,omitempty"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Strategies    []string          `json:"strategies"`
	CacheEnabled  bool              `json:"cache_enabled"`
	DataVersion   string            `json:"data_version,omitempty"`
	DataError     string            `json:"data_error,omitempty"`
	Engine        recommend.Metrics `json:"engine"`
}

// Products handles GET /api/v1/products.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	products, err := h.engine.Catalog(r.Context())
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}
	rw.SuccessList(products, len(products))
}

// Strategies handles GET /api/v1/recommendations.
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	names := h.engine.Strategies()
	NewResponseWriter(w, r).SuccessList(names, len(names))
}

// Candidates handles GET /api/v1/recommendations/{strategy}/candidates.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	products, err := h.engine.Candidates(r.Context(), chi.URLParam(r, "strategy"))
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}
	rw.SuccessList(products, len(products))
}

// Recommend handles POST /api/v1/recommendations/{strategy}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	strategy := chi.URLParam(r, "strategy")
	if !h.knownStrategy(rw, strategy) {
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}

	var body RecommendRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			rw.BadRequest("invalid request body: " + err.Error())
			return
		}
	}

	h.recommend(rw, r, strategy, body)
}

// RecommendQuery handles GET /api/v1/recommendations/{strategy} with the
// product_id and exclude_self query parameters.
func (h *Handler) RecommendQuery(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	strategy := chi.URLParam(r, "strategy")
	if !h.knownStrategy(rw, strategy) {
		return
	}

	query := r.URL.Query()
	body := RecommendRequest{ProductID: ProductRef(query.Get("product_id"))}
	if v := query.Get("exclude_self"); v != "" {
		exclude, err := strconv.ParseBool(v)
		if err != nil {
			rw.BadRequest("exclude_self must be a boolean")
			return
		}
		body.ExcludeSelf = &exclude
	}

	h.recommend(rw, r, strategy, body)
}

// Health handles GET /api/v1/health. It always answers 200 while the
// process is up; a failing data version check reports "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Strategies:    h.engine.Strategies(),
		CacheEnabled:  h.engine.CacheEnabled(),
		Engine:        h.engine.GetMetrics(),
	}
	version, err := h.engine.DataVersion(r.Context())
	if err != nil {
		status.Status = "degraded"
		status.DataError = err.Error()
	} else {
		status.DataVersion = version
	}
	NewResponseWriter(w, r).Success(status)
}

// Ready handles GET /api/v1/health/ready. It loads the catalog and answers
// 503 when the source tables cannot be read.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	products, err := h.engine.Catalog(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"data source not ready", map[string]string{"error": err.Error()})
		return
	}
	rw.Success(map[string]interface{}{
		"status":   "ready",
		"products": len(products),
	})
}

// Performance handles GET /api/v1/stats/performance.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	stats := []middleware.EndpointStats{}
	if h.monitor != nil {
		stats = h.monitor.Stats()
	}
	NewResponseWriter(w, r).SuccessList(stats, len(stats))
}

func (h *Handler) knownStrategy(rw *ResponseWriter, name string) bool {
	if slices.Contains(h.engine.Strategies(), name) {
		return true
	}
	rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound,
		fmt.Sprintf("unknown strategy %q", name),
		map[string]interface{}{"strategies": h.engine.Strategies()})
	return false
}

func (h *Handler) recommend(rw *ResponseWriter, r *http.Request, strategy string, body RecommendRequest) {
	if errs := validation.ValidateStruct(&body); errs != nil {
		rw.ValidationError(errs.Error(), errs.Details())
		return
	}

	var (
		id      int
		refresh bool
	)
	if body.ProductID != "" {
		// Already validated by the product_ref rule.
		id, refresh, _ = validation.ParseProductRef(string(body.ProductID))
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Strategy:    strategy,
		ProductID:   id,
		Refresh:     refresh,
		ExcludeSelf: body.excludeSelf(),
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if recommend.IsNoRecommendation(err) {
			rw.Success(RecommendationData{
				Strategy: strategy,
				Items:    []recommend.Product{},
				Reason:   reasonOf(err),
				Message:  err.Error(),
			})
			return
		}
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(RecommendationData{
		Strategy:    resp.Strategy,
		Cart:        resp.Query,
		Items:       resp.Items,
		Refreshed:   resp.Metadata.Refreshed,
		DataVersion: resp.Metadata.DataVersion,
		CacheHit:    resp.Metadata.CacheHit,
		LatencyMS:   resp.Metadata.LatencyMS,
	})
}

// writeEngineError maps engine errors to HTTP responses.
func (h *Handler) writeEngineError(rw *ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())

	var dsErr *recommend.DataSourceError
	switch {
	case errors.Is(err, recommend.ErrUnknownStrategy):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, err.Error(),
			map[string]interface{}{"strategies": h.engine.Strategies()})
	case errors.As(err, &dsErr):
		logger.Error().Err(err).Str("table", dsErr.Table).Msg("Data source unavailable")
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeDataSource,
			"data source unavailable", map[string]string{"table": dsErr.Table})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Request timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		logger.Debug().Err(err).Msg("Request canceled by client")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "request canceled")
	default:
		logger.Error().Err(err).Msg("Request failed")
		rw.InternalError("internal error")
	}
}

func reasonOf(err error) string {
	if errors.Is(err, recommend.ErrIndexOutOfRange) {
		return ReasonIndexOutOfRange
	}
	return ReasonProductNotFound
}
