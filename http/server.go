// Package http provides the HTTP transport for the extraction core:
// JSON envelope decoding, per-document-kind routing, and operational
// endpoints. The core never sees any of this; it receives a raw HTML
// string and its result is forwarded unchanged.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rcardoso/faturex"
)

// ServiceName identifies the service in the health payload.
const ServiceName = "faturex"

// Envelope is the conventional JSON wrapper automated mail forwarders put
// around the HTML fragment.
type Envelope struct {
	HTMLEmail string `json:"html_email"`
}

// Server handles extraction requests over HTTP. Each document kind is
// served under its own path segment with its own layout.
type Server struct {
	extractor faturex.RowExtractor
	layouts   map[string]faturex.RowLayout
	logger    *slog.Logger
	limiter   *ClientLimiter
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLayout registers a layout under a document kind path segment,
// replacing any default registered under the same kind.
func WithLayout(kind string, layout faturex.RowLayout) Option {
	return func(s *Server) {
		s.layouts[kind] = layout
	}
}

// WithRateLimit enables per-client rate limiting at the given requests
// per second and burst size.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = NewClientLimiter(rps, burst)
	}
}

// NewServer creates a Server with the billing and order layouts
// registered by default.
func NewServer(extractor faturex.RowExtractor, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		extractor: extractor,
		layouts: map[string]faturex.RowLayout{
			"billing": faturex.BillingLayout(),
			"order":   faturex.OrderLayout(),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}
	r.Get("/", s.handleHealth)
	r.Post("/extract/{kind}", s.handleExtract)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth reports the service status and the expected columns of
// every registered layout.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	layouts := make(map[string][]string, len(s.layouts))
	for kind, layout := range s.layouts {
		layouts[kind] = layout.ColumnNames()
	}
	s.respond(w, http.StatusOK, map[string]any{
		"status":  "online",
		"service": ServiceName,
		"layouts": layouts,
	})
}

// handleExtract runs one extraction pass for the document kind in the
// path. The body is either an Envelope or raw HTML.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	layout, ok := s.layouts[kind]
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown document kind %q", kind)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	html := decodeEnvelope(body)
	if html == "" {
		// Nothing to extract: an empty, well-formed result.
		s.respond(w, http.StatusOK, &faturex.ExtractionResult{Records: []faturex.Record{}})
		return
	}

	result, err := s.extractor.Extract(html, layout)
	if err != nil {
		s.respondError(w, errorStatus(err), "%s", faturex.ErrorMessage(err))
		return
	}
	if result.Records == nil {
		result.Records = []faturex.Record{}
	}
	s.respond(w, http.StatusOK, result)
}

// decodeEnvelope unwraps {"html_email": ...}. A body that is not such an
// envelope is treated as raw HTML, matching what older mail forwarders
// send.
func decodeEnvelope(body []byte) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		return env.HTMLEmail
	}
	return string(body)
}

// errorStatus maps application error codes to HTTP status codes.
func errorStatus(err error) int {
	switch faturex.ErrorCode(err) {
	case faturex.EINVALID, faturex.EUNPARSEABLE:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, format string, args ...any) {
	s.respond(w, status, map[string]string{
		"error": fmt.Sprintf(format, args...),
	})
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
		)
		next.ServeHTTP(w, r)
	})
}
