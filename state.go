package gridvalidate

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

type cellState struct {
	invalid    bool
	errors     map[string]struct{}
	generation uint64
}

func (c *cellState) empty() bool {
	return !c.invalid && len(c.errors) == 0 && c.generation == 0
}

// stateTable maps cells to their validation state. Entries with no flag, no
// errors and no run in flight are dropped.
type stateTable struct {
	mu    sync.Mutex
	cells map[CellRef]*cellState
	seq   uint64
}

func newStateTable() *stateTable {
	return &stateTable{cells: make(map[CellRef]*cellState)}
}

// The helpers below expect t.mu to be held.

func (t *stateTable) get(ref CellRef) *cellState {
	return t.cells[ref]
}

func (t *stateTable) ensure(ref CellRef) *cellState {
	c, ok := t.cells[ref]
	if !ok {
		c = &cellState{}
		t.cells[ref] = c
	}
	return c
}

func (t *stateTable) gc(ref CellRef) {
	if c, ok := t.cells[ref]; ok && c.empty() {
		delete(t.cells, ref)
	}
}

func (t *stateTable) setInvalid(ref CellRef) {
	t.ensure(ref).invalid = true
}

func (t *stateTable) setValid(ref CellRef) {
	if c := t.get(ref); c != nil {
		c.invalid = false
		t.gc(ref)
	}
}

func (t *stateTable) setError(ref CellRef, validatorType string) {
	c := t.ensure(ref)
	if c.errors == nil {
		c.errors = make(map[string]struct{})
	}
	c.errors[validatorType] = struct{}{}
}

func (t *stateTable) clearError(ref CellRef, validatorType string) {
	if c := t.get(ref); c != nil {
		delete(c.errors, validatorType)
		t.gc(ref)
	}
}

func (t *stateTable) errorTypes(ref CellRef) []string {
	c := t.get(ref)
	if c == nil || len(c.errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.errors))
	for k := range c.errors {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// begin starts a new run for ref and returns its generation. Generations come
// from one table-wide sequence so a forgotten and re-created cell never reuses one.
func (t *stateTable) begin(ref CellRef) uint64 {
	t.seq++
	t.ensure(ref).generation = t.seq
	return t.seq
}

func (t *stateTable) current(ref CellRef, generation uint64) bool {
	c := t.get(ref)
	return c != nil && c.generation == generation
}

// finish marks the run as settled once no completion is outstanding.
func (t *stateTable) finish(ref CellRef, generation uint64) {
	if c := t.get(ref); c != nil && c.generation == generation {
		c.generation = 0
		t.gc(ref)
	}
}

func (t *stateTable) forget(rowID uuid.UUID) int {
	n := 0
	for ref := range t.cells {
		if ref.RowID == rowID {
			delete(t.cells, ref)
			n++
		}
	}
	return n
}
