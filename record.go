package faturex

import (
	"bytes"
	"encoding/json"
)

// FieldValue is one named value inside a Record.
type FieldValue struct {
	Name  string
	Value string
}

// Record is one accepted data row. Values appear in layout field order,
// which is also the key order of the serialized JSON object. Monetary
// values are canonical decimal strings in -?\d+\.\d{2} form.
type Record []FieldValue

// Get returns the value for the named field and whether it exists.
func (r Record) Get(name string) (string, bool) {
	for _, fv := range r {
		if fv.Name == name {
			return fv.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(fv.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RejectReason classifies why a candidate data row produced no Record.
type RejectReason string

// RejectReason constants for ExtractionResult.Rejections.
const (
	ReasonTooFewColumns   RejectReason = "too_few_columns"
	ReasonIndexOutOfRange RejectReason = "index_out_of_range"
	ReasonEmptyRequired   RejectReason = "empty_required"
	ReasonBadMoney        RejectReason = "bad_money"
	ReasonZeroTotal       RejectReason = "zero_total"
	ReasonNegativeTotal   RejectReason = "negative_total"
)

// ExtractionResult is the outcome of one extraction pass. It is built
// fresh per invocation and carries no state across calls. Records keep
// document order; rejected rows only show up in the counters.
type ExtractionResult struct {
	Records []Record `json:"records"`

	// RowsSeen counts candidate data rows (rows carrying a marker class).
	// Unmarked rows are skipped silently and not counted.
	RowsSeen     int `json:"rowsSeen"`
	RowsAccepted int `json:"rowsAccepted"`
	RowsRejected int `json:"rowsRejected"`

	// Rejections tallies rejected rows by reason.
	Rejections map[RejectReason]int `json:"rejections,omitempty"`
}

// Accept appends a record and counts it.
func (r *ExtractionResult) Accept(record Record) {
	r.Records = append(r.Records, record)
	r.RowsAccepted++
}

// Reject counts one rejected row under the given reason.
func (r *ExtractionResult) Reject(reason RejectReason) {
	r.RowsRejected++
	if r.Rejections == nil {
		r.Rejections = make(map[RejectReason]int)
	}
	r.Rejections[reason]++
}

// RowExtractor extracts data-row records from an HTML fragment.
type RowExtractor interface {
	// Extract parses html leniently and returns the records of every
	// accepted data row together with acceptance counters. Row-level
	// failures are counted on the result and never abort the batch; an
	// input with no table or no candidate rows yields an empty result
	// and a nil error. The only error condition is an invalid layout.
	Extract(html string, layout RowLayout) (*ExtractionResult, error)
}
