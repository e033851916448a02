package gridvalidate

import (
	"context"
	"html/template"

	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

// Facade is the part of the service exposed on Grid.Validate for rendering code.
type Facade struct {
	svc *Service
}

func (f *Facade) IsInvalid(row *Row, col *ColumnDef) bool {
	return f.svc.IsInvalid(row, col)
}

func (f *Facade) GetFormattedErrors(row *Row, col *ColumnDef) (template.HTML, bool) {
	return f.svc.GetFormattedErrors(row, col)
}

func (f *Facade) GetTitleFormattedErrors(row *Row, col *ColumnDef) (string, bool) {
	return f.svc.GetTitleFormattedErrors(row, col)
}

func (f *Facade) RunValidators(ctx context.Context, row *Row, col *ColumnDef, newValue, oldValue any) (*Run, error) {
	return f.svc.RunValidators(ctx, row, col, newValue, oldValue)
}

// InitializeGrid prepares grid for validation: it resets every column
// registry, registers the built-in validators and sets grid.Validate. When the
// grid is editable, every edit published on AfterCellEdit runs the validators
// of the edited column until ctx is done. Calling it again for the same feed
// does not add a second consumer. On error grid.Validate is left unchanged.
func (s *Service) InitializeGrid(ctx context.Context, grid *Grid) error {
	if grid == nil {
		return ErrNilGrid
	}

	for _, col := range grid.Columns {
		if col != nil {
			s.registry(col).Reset()
		}
	}

	if err := s.CreateDefaultValidators(grid); err != nil {
		return err
	}

	facade := &Facade{svc: s}
	grid.Validate = facade

	if grid.Edit != nil && grid.Edit.AfterCellEdit != nil {
		s.watch(ctx, grid.Edit.AfterCellEdit, facade)
	}

	return nil
}

// watch starts a consumer for feed unless one is already running.
func (s *Service) watch(ctx context.Context, feed *EditFeed, facade *Facade) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()

	if _, ok := s.feeds[feed]; ok {
		s.logger.DebugContext(ctx, "edit feed already consumed")
		return
	}
	s.feeds[feed] = struct{}{}

	sub := feed.Subscribe(ctx)
	go func() {
		defer func() {
			s.feedMu.Lock()
			delete(s.feeds, feed)
			s.feedMu.Unlock()
		}()
		s.consumeEdits(ctx, facade, sub.Receive())
	}()
}

func (s *Service) consumeEdits(ctx context.Context, facade *Facade, edits <-chan broadcastMessage) {
	for msg := range edits {
		edit := msg.Data
		if _, err := facade.RunValidators(ctx, edit.Row, edit.Column, edit.NewValue, edit.OldValue); err != nil {
			logCtx := ctx
			if ref, ok := cellRef(edit.Row, edit.Column); ok {
				logCtx = withCell(ctx, ref)
			}
			s.logger.ErrorContext(logCtx, "cell edit validation failed", logger.Error(err))
		}
	}
}
