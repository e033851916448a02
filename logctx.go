package gridvalidate

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

type cellCtxKey struct{}

// withCell marks ctx as belonging to a validation of ref.
func withCell(ctx context.Context, ref CellRef) context.Context {
	return context.WithValue(ctx, cellCtxKey{}, ref)
}

// CellFromContext returns the cell a validator context was created for.
// Validators receive such a context from RunValidators.
func CellFromContext(ctx context.Context) (CellRef, bool) {
	ref, ok := ctx.Value(cellCtxKey{}).(CellRef)
	return ref, ok
}

// cellLogAttrs adds row_id and column to records logged with a cell context.
func cellLogAttrs(ctx context.Context) (slog.Attr, bool) {
	ref, ok := CellFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.Group("cell", logger.RowID(ref.RowID), logger.Column(ref.Column)), true
}
