// Package faturex extracts structured billing and order line records from
// HTML table fragments embedded in automated emails, normalizing
// Brazilian-locale monetary values into canonical decimal strings.
//
// This package contains domain types, pure transformation functions, and
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, slog/).
package faturex
