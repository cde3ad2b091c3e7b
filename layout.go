package faturex

import "strings"

// FieldKind distinguishes plain text columns from monetary columns.
type FieldKind string

// FieldKind constants for Field.
const (
	KindText  FieldKind = "text"
	KindMoney FieldKind = "money"
)

// Field maps one column position in a data row to a named record field.
type Field struct {
	// Name is the record key the column value is stored under.
	Name string

	// Column is the zero-based cell index the value is read from.
	Column int

	// Kind selects the processing applied to the cell text: text cleanup
	// only, or cleanup followed by monetary normalization.
	Kind FieldKind

	// Required rejects the row when the cleaned value is empty.
	// Only meaningful for text fields.
	Required bool
}

// RowLayout describes how to read data rows for one document kind.
// Layouts are configuration supplied by the caller: the extraction
// algorithm never assumes a particular column arrangement. A RowLayout is
// immutable once in use and safe to share between goroutines.
type RowLayout struct {
	// Kind names the document kind the layout describes (e.g. "billing").
	Kind string

	// Fields lists the columns to extract, in record output order.
	Fields []Field

	// MinColumns rejects rows with fewer cells than this.
	MinColumns int

	// Markers identify data rows: a row qualifies when any of its class
	// tokens contains any marker substring. Automated report mails use
	// two alternating zebra-stripe classes, so this is a substring match
	// over a token set rather than an exact class name.
	Markers []string

	// RejectZeroTotal rejects rows whose monetary value normalizes to
	// exactly "0.00".
	RejectZeroTotal bool

	// AllowNegativeTotal accepts rows with negative monetary values
	// (returns and credits), preserving the sign. When unset, negative
	// totals reject the row.
	AllowNegativeTotal bool
}

// Validate returns an error if the layout cannot drive an extraction.
func (l *RowLayout) Validate() error {
	if l.Kind == "" {
		return Errorf(EINVALID, "layout kind required")
	}
	if len(l.Fields) == 0 {
		return Errorf(EINVALID, "layout requires at least one field")
	}
	if len(l.Markers) == 0 {
		return Errorf(EINVALID, "layout requires at least one data-row marker")
	}
	for _, f := range l.Fields {
		if f.Name == "" {
			return Errorf(EINVALID, "layout field name required")
		}
		if f.Column < 0 {
			return Errorf(EINVALID, "layout field %q has negative column index", f.Name)
		}
		if f.Kind != KindText && f.Kind != KindMoney {
			return Errorf(EINVALID, "layout field %q has unknown kind %q", f.Name, f.Kind)
		}
	}
	return nil
}

// IsDataRow reports whether a row's class tokens mark it as a data row.
// Rows without a marker (headers, spacers, totals) are not data rows.
func (l *RowLayout) IsDataRow(classes []string) bool {
	for _, class := range classes {
		for _, marker := range l.Markers {
			if strings.Contains(class, marker) {
				return true
			}
		}
	}
	return false
}

// ColumnNames returns the field names in record output order.
func (l *RowLayout) ColumnNames() []string {
	names := make([]string, 0, len(l.Fields))
	for _, f := range l.Fields {
		names = append(names, f.Name)
	}
	return names
}

// BillingLayout returns the 10-column billing line layout used by the
// upstream report mails. Zero totals carry no information for billing and
// are rejected; negative totals never occur in this document kind.
func BillingLayout() RowLayout {
	return RowLayout{
		Kind: "billing",
		Fields: []Field{
			{Name: "Cod. Cli./For.", Column: 0, Kind: KindText, Required: true},
			{Name: "Cliente/Fornecedor", Column: 1, Kind: KindText},
			{Name: "Data", Column: 2, Kind: KindText, Required: true},
			{Name: "Total Item", Column: 3, Kind: KindMoney},
			{Name: "Vendedor", Column: 4, Kind: KindText},
			{Name: "Ref. Produto", Column: 5, Kind: KindText},
			{Name: "Des. Grupo Completa", Column: 6, Kind: KindText},
			{Name: "Marca", Column: 7, Kind: KindText},
			{Name: "Cidade", Column: 8, Kind: KindText},
			{Name: "Estado", Column: 9, Kind: KindText},
		},
		MinColumns:      10,
		Markers:         []string{"destac"},
		RejectZeroTotal: true,
	}
}

// OrderLayout returns the 12-column order line layout. Orders include
// returns and credits, so negative totals are preserved and accepted.
func OrderLayout() RowLayout {
	return RowLayout{
		Kind: "order",
		Fields: []Field{
			{Name: "Pedido", Column: 0, Kind: KindText, Required: true},
			{Name: "Cod. Cli./For.", Column: 1, Kind: KindText, Required: true},
			{Name: "Cliente/Fornecedor", Column: 2, Kind: KindText},
			{Name: "Data", Column: 3, Kind: KindText, Required: true},
			{Name: "Qtde", Column: 4, Kind: KindText},
			{Name: "Total Item", Column: 5, Kind: KindMoney},
			{Name: "Vendedor", Column: 6, Kind: KindText},
			{Name: "Ref. Produto", Column: 7, Kind: KindText},
			{Name: "Des. Grupo Completa", Column: 8, Kind: KindText},
			{Name: "Marca", Column: 9, Kind: KindText},
			{Name: "Cidade", Column: 10, Kind: KindText},
			{Name: "Estado", Column: 11, Kind: KindText},
		},
		MinColumns:         12,
		Markers:            []string{"destac"},
		AllowNegativeTotal: true,
	}
}
