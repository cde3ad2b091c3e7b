// Package slog provides logging decorators for faturex interfaces.
package slog

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rcardoso/faturex"
)

// Ensure LoggingExtractor implements faturex.RowExtractor at compile time.
var _ faturex.RowExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RowExtractor with structured logging of the
// per-batch counters. The input itself is never logged; a fingerprint
// hash stands in for it so repeated payloads can be correlated.
type LoggingExtractor struct {
	next   faturex.RowExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next faturex.RowExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, layout faturex.RowLayout) (*faturex.ExtractionResult, error) {
	begin := time.Now()

	result, err := e.next.Extract(html, layout)
	if err != nil {
		e.logger.Error("extraction failed",
			"layout", layout.Kind,
			"error", err,
		)
		return nil, err
	}

	attrs := []any{
		"layout", layout.Kind,
		"input", fingerprint(html),
		"rowsSeen", result.RowsSeen,
		"rowsAccepted", result.RowsAccepted,
		"rowsRejected", result.RowsRejected,
		"duration", time.Since(begin),
	}
	for reason, n := range result.Rejections {
		attrs = append(attrs, "reject."+string(reason), n)
	}
	e.logger.Info("extraction", attrs...)

	return result, nil
}

// fingerprint computes a short stable hash of the input HTML.
func fingerprint(html string) string {
	return strconv.FormatUint(xxhash.Sum64String(html), 16)
}
