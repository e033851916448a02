// Package gridvalidate tracks per-cell validation state for editable data grids.
//
// A Service keeps a side table keyed by (row identity, column name) with an
// invalid flag and the set of failed validator types. Row entities are never
// modified.
//
// # Setup
//
//	svc := gridvalidate.NewService(gridvalidate.WithLogger(log))
//
//	age := &gridvalidate.ColumnDef{
//		Name:       "age",
//		Validators: map[string]any{"minLength": 2, "notNull": true},
//	}
//	grid := &gridvalidate.Grid{
//		Columns: []*gridvalidate.ColumnDef{age},
//		Edit:    gridvalidate.NewEditFeature(),
//	}
//	if err := svc.InitializeGrid(ctx, grid); err != nil {
//		return err
//	}
//
// InitializeGrid registers the built-in validators (minLength, maxLength,
// notNull) and, for editable grids, validates every edit published on
// grid.Edit.AfterCellEdit until ctx is done.
//
// # Running validators
//
//	run, err := svc.RunValidators(ctx, row, age, "", nil)
//	if err != nil {
//		return err // the column has no name
//	}
//	_ = run.Wait(ctx) // only needed for asynchronous validators
//
//	if svc.IsInvalid(row, age) {
//		title, _ := svc.GetTitleFormattedErrors(row, age)
//	}
//
// Validators return an *async.Future[bool]. Use Sync, Async or RuleValidator to
// build them and AddColumnValidator to register custom types. A rejected,
// panicking or timed out validator counts as a failure. When a cell is edited
// again before earlier asynchronous validators complete, their results are
// discarded.
//
// # Messages
//
// Error messages come from a Localizer. The bundled translations (en, de, fr,
// es) use the keys validate.error and validate.<type>, where THRESHOLD is
// replaced by the configured threshold.
package gridvalidate
