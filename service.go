package gridvalidate

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

// Service tracks per-cell validation state and runs column validators.
// It is safe for concurrent use.
type Service struct {
	table        *stateTable
	localizer    Localizer
	logger       *slog.Logger
	metrics      *Metrics
	strictTypes  bool
	asyncTimeout time.Duration

	// colMu guards lazy creation of ColumnDef.ColumnValidators.
	colMu sync.Mutex

	// feeds holds the edit feeds with a running consumer.
	feedMu sync.Mutex
	feeds  map[*EditFeed]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocalizer sets the message source used by the built-in validators and
// the error header. The bundled English messages are used by default.
func WithLocalizer(l Localizer) Option {
	return func(s *Service) {
		if l != nil {
			s.localizer = l
		}
	}
}

// WithStrictValidatorTypes controls whether unknown validator types in a column
// configuration fail CreateDefaultValidators (true, the default) or are logged and skipped.
func WithStrictValidatorTypes(strict bool) Option {
	return func(s *Service) {
		s.strictTypes = strict
	}
}

// WithAsyncTimeout bounds how long a single validator may take. An overdue
// validator counts as failed. Zero disables the bound.
func WithAsyncTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.asyncTimeout = max(d, 0)
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		table:       newStateTable(),
		feeds:       make(map[*EditFeed]struct{}),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		strictTypes: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.localizer == nil {
		s.localizer = defaultLocalizer()
	}
	s.logger = logger.Decorate(s.logger, cellLogAttrs).With(logger.Component("gridvalidate"))
	return s
}

func cellRef(row *Row, col *ColumnDef) (CellRef, bool) {
	if row == nil || col == nil {
		return CellRef{}, false
	}
	return CellRef{RowID: row.ID, Column: col.Name}, true
}

// IsInvalid reports whether the cell is flagged invalid.
func (s *Service) IsInvalid(row *Row, col *ColumnDef) bool {
	ref, ok := cellRef(row, col)
	if !ok {
		return false
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	c := s.table.get(ref)
	return c != nil && c.invalid
}

func (s *Service) SetInvalid(row *Row, col *ColumnDef) {
	ref, ok := cellRef(row, col)
	if !ok {
		return
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	s.table.setInvalid(ref)
}

// SetValid removes the invalid flag. Recorded errors are left alone.
func (s *Service) SetValid(row *Row, col *ColumnDef) {
	ref, ok := cellRef(row, col)
	if !ok {
		return
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	s.table.setValid(ref)
}

func (s *Service) SetError(row *Row, col *ColumnDef, validatorType string) {
	ref, ok := cellRef(row, col)
	if !ok {
		return
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	s.table.setError(ref, validatorType)
}

// ClearError removes one validator type from the cell errors. Absent types are ignored.
func (s *Service) ClearError(row *Row, col *ColumnDef, validatorType string) {
	ref, ok := cellRef(row, col)
	if !ok {
		return
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	s.table.clearError(ref, validatorType)
}

// Errors returns the failed validator types of the cell in sorted order.
func (s *Service) Errors(row *Row, col *ColumnDef) []string {
	ref, ok := cellRef(row, col)
	if !ok {
		return nil
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	return s.table.errorTypes(ref)
}

// State returns a copy of the cell state.
func (s *Service) State(row *Row, col *ColumnDef) CellState {
	ref, ok := cellRef(row, col)
	if !ok {
		return CellState{}
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	c := s.table.get(ref)
	if c == nil {
		return CellState{}
	}
	return CellState{Invalid: c.invalid, Errors: s.table.errorTypes(ref)}
}

// Forget drops every cell state of row. Completions still in flight for the
// row are discarded.
func (s *Service) Forget(row *Row) {
	if row == nil {
		return
	}

	s.table.mu.Lock()
	n := s.table.forget(row.ID)
	s.table.mu.Unlock()

	s.logger.Debug("row state forgotten", logger.RowID(row.ID), slog.Int("cells", n))
}
