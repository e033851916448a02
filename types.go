package gridvalidate

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gridvalidate/pkg/async"
)

// Row is one data record bound to a grid row. The service never mutates Entity;
// validation state is kept in a side table keyed by ID.
type Row struct {
	ID     uuid.UUID
	Entity map[string]any
}

// NewRow wraps entity in a Row with a fresh identity.
func NewRow(entity map[string]any) *Row {
	return &Row{ID: uuid.New(), Entity: entity}
}

// CellRef identifies one cell: a row identity plus a column name.
type CellRef struct {
	RowID  uuid.UUID
	Column string
}

// CellState is the validation state of one cell.
type CellState struct {
	Invalid bool
	// Errors holds the failed validator types in sorted order.
	Errors []string
}

// ColumnDef is the static configuration of a grid column.
type ColumnDef struct {
	// Name is required for validation; it namespaces the cell state.
	Name string
	// Validators maps a validator type to its threshold, e.g. {"minLength": 3}.
	Validators map[string]any
	// ColumnValidators is reset by InitializeGrid and filled from Validators
	// plus any AddColumnValidator calls.
	ColumnValidators *Registry
}

// Check is what a validator receives.
type Check struct {
	Threshold any
	NewValue  any
	OldValue  any
	Row       *Row
	Column    *ColumnDef
}

// ValidateFunc reports whether a check passes. Synchronous validators return an
// already resolved future. A rejected future counts as a failure.
type ValidateFunc func(ctx context.Context, check Check) *async.Future[bool]

// PrintErrorFunc renders the message shown for a failed validator.
type PrintErrorFunc func(threshold any) string

// ValidatorEntry is one registered validator of a column.
type ValidatorEntry struct {
	Threshold  any
	Validate   ValidateFunc
	PrintError PrintErrorFunc
}

// Grid is the host grid as seen by the validation service.
type Grid struct {
	Columns []*ColumnDef
	// Edit is nil when the grid is read-only.
	Edit *EditFeature
	// Validate is set by InitializeGrid.
	Validate *Facade
}

// Column returns the column definition with the given name.
func (g *Grid) Column(name string) (*ColumnDef, bool) {
	for _, col := range g.Columns {
		if col != nil && col.Name == name {
			return col, true
		}
	}
	return nil, false
}
