package main

import (
	"net/http"

	"github.com/rcardoso/faturex/goquery"
	faturexhttp "github.com/rcardoso/faturex/http"
	faturexslog "github.com/rcardoso/faturex/slog"
)

// ServeCmd runs the HTTP extraction service.
type ServeCmd struct {
	Addr      string  `default:":8080" help:"Listen address."`
	RateLimit float64 `default:"0" help:"Per-client requests per second (0 disables)."`
	Burst     int     `default:"5" help:"Per-client burst size when rate limiting."`
}

func (c *ServeCmd) Run(deps *Dependencies) error {
	extractor := faturexslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)

	var opts []faturexhttp.Option
	if c.RateLimit > 0 {
		opts = append(opts, faturexhttp.WithRateLimit(c.RateLimit, c.Burst))
	}

	server := faturexhttp.NewServer(extractor, deps.Logger, opts...)

	deps.Logger.Info("listening", "addr", c.Addr)
	return http.ListenAndServe(c.Addr, server)
}
