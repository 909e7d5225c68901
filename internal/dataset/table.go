// Package dataset loads the storefront source table and exposes it as a
// read-only Table handle.
package dataset

import "github.com/maroof-insights/storefront-dashboard/internal/models"

// Table is an immutable in-memory copy of the source table. Row identity is
// the position of the record.
type Table struct {
	records []models.StoreRecord
	source  string
}

// NewTable copies records into a new Table
func NewTable(source string, records []models.StoreRecord) *Table {
	owned := make([]models.StoreRecord, len(records))
	copy(owned, records)
	return &Table{records: owned, source: source}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th row
func (t *Table) At(i int) models.StoreRecord {
	return t.records[i]
}

// Records returns a copy of all rows
func (t *Table) Records() []models.StoreRecord {
	if t == nil {
		return nil
	}
	out := make([]models.StoreRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Source describes where the table was loaded from
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}
