// Package mock provides function-field mocks for the faturex interfaces.
package mock

import "github.com/rcardoso/faturex"

var _ faturex.RowExtractor = (*RowExtractor)(nil)

// RowExtractor is a mock implementation of faturex.RowExtractor.
type RowExtractor struct {
	ExtractFn func(html string, layout faturex.RowLayout) (*faturex.ExtractionResult, error)
}

func (e *RowExtractor) Extract(html string, layout faturex.RowLayout) (*faturex.ExtractionResult, error) {
	return e.ExtractFn(html, layout)
}
