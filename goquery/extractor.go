// Package goquery provides a goquery-based implementation of
// faturex.RowExtractor. Parsing is lenient: goquery builds its tree with
// golang.org/x/net/html, which recovers from unclosed and malformed tags
// instead of failing, so one broken row never takes down the batch.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rcardoso/faturex"
)

// Ensure Extractor implements faturex.RowExtractor at compile time.
var _ faturex.RowExtractor = (*Extractor)(nil)

// Extractor extracts data rows from HTML tables.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract walks every table row in document order, keeps rows whose class
// list carries one of the layout's markers, and maps their cells through
// the layout. Row-level failures are counted on the result, never
// returned; the only error condition is an invalid layout. Input with no
// parseable table yields an empty result.
func (e *Extractor) Extract(html string, layout faturex.RowLayout) (*faturex.ExtractionResult, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	result := &faturex.ExtractionResult{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unreadable input is an empty batch, not a failure.
		return result, nil
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		class, _ := row.Attr("class")
		if !layout.IsDataRow(strings.Fields(class)) {
			return
		}
		result.RowsSeen++

		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return faturex.Clean(cell.Text())
		})

		record, reason := buildRecord(cells, layout)
		if reason != "" {
			result.Reject(reason)
			return
		}
		result.Accept(record)
	})

	return result, nil
}

// buildRecord maps cleaned cell texts through the layout's fields and
// applies the acceptance rules. It returns a non-empty reason instead of
// a record when any rule fails; the first failing field wins.
func buildRecord(cells []string, layout faturex.RowLayout) (faturex.Record, faturex.RejectReason) {
	if len(cells) < layout.MinColumns {
		return nil, faturex.ReasonTooFewColumns
	}

	record := make(faturex.Record, 0, len(layout.Fields))
	for _, field := range layout.Fields {
		if field.Column >= len(cells) {
			return nil, faturex.ReasonIndexOutOfRange
		}
		value := cells[field.Column]

		if field.Kind == faturex.KindMoney {
			normalized, err := faturex.Normalize(value)
			if err != nil {
				return nil, faturex.ReasonBadMoney
			}
			if layout.RejectZeroTotal && normalized == "0.00" {
				return nil, faturex.ReasonZeroTotal
			}
			if !layout.AllowNegativeTotal && strings.HasPrefix(normalized, "-") {
				return nil, faturex.ReasonNegativeTotal
			}
			value = normalized
		} else if field.Required && value == "" {
			return nil, faturex.ReasonEmptyRequired
		}

		record = append(record, faturex.FieldValue{Name: field.Name, Value: value})
	}
	return record, ""
}
