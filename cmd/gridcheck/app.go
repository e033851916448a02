package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/gridvalidate"
	"github.com/dmitrymomot/gridvalidate/pkg/config"
	"github.com/dmitrymomot/gridvalidate/pkg/logger"
	"github.com/dmitrymomot/gridvalidate/pkg/validator"
)

const envPrefix = "GRIDVALIDATE_"

// gridFile is the YAML grid definition.
type gridFile struct {
	Columns []columnFile `yaml:"columns"`
}

type columnFile struct {
	Name       string         `yaml:"name"`
	Validators map[string]any `yaml:"validators"`
	// Range adds numeric bounds on top of the built-in validators.
	Range *rangeFile `yaml:"range"`
}

type rangeFile struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

type (
	rowsFileKey struct{}
	rowIndexKey struct{}
)

// unset is the previous value of every cell, so even empty cells are validated.
type unset struct{}

type invalidCell struct {
	Row    int
	Column string
	Title  string
	HTML   string
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "gridcheck",
		Usage: "Validate grid rows against column validator definitions",
		Commands: []*cli.Command{
			validateCmd(),
		},
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Run column validators over every cell of a rows file",
		Description: `Loads a grid definition and a list of rows, treats every cell as an edit
and prints the errors of each invalid cell. Exits with status 1 when any cell is invalid.

# Grid file

  columns:
    - name: age
      validators:
        minLength: 1
        notNull: true
      range:
        min: 18
        max: 120

# Rows file

  - age: "42"
  - age: ""`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "grid",
				Aliases:  []string{"g"},
				Required: true,
				Usage:    "Path to the YAML grid definition",
			},
			&cli.StringFlag{
				Name:     "rows",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Path to the YAML list of rows",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Message language (default from GRIDVALIDATE_LANGUAGE or en)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format (text, html)",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "Skip unknown validator types instead of failing",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Maximum time to wait for validators",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error), overriding GRIDVALIDATE_ENVIRONMENT",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if format != "text" && format != "html" {
				return fmt.Errorf("unknown output format: %q, valid formats are: text, html", format)
			}

			var cfg gridvalidate.Config
			if err := config.Load(&cfg, config.WithPrefix(envPrefix)); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.IsSet("lang") {
				cfg.Language = cmd.String("lang")
			}
			if cmd.IsSet("log-level") {
				cfg.LogLevel = cmd.String("log-level")
			}
			if cmd.Bool("lenient") {
				cfg.StrictValidatorTypes = false
			}

			logOpts, err := cfg.LogOptions()
			if err != nil {
				return err
			}
			log := logger.New(append(logOpts,
				logger.WithOutput(errWriter(cmd)),
				logger.WithContextValue("rows_file", rowsFileKey{}),
				logger.WithContextValue("row", rowIndexKey{}),
			)...)
			logger.SetAsDefault(log)

			svc, err := gridvalidate.NewServiceFromConfig(ctx, cfg, nil, gridvalidate.WithLogger(log))
			if err != nil {
				return err
			}

			grid, ranges, err := loadGrid(cmd.String("grid"))
			if err != nil {
				return err
			}
			rows, err := loadRows(cmd.String("rows"))
			if err != nil {
				return err
			}

			ctx = context.WithValue(ctx, rowsFileKey{}, cmd.String("rows"))
			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			invalid, err := check(ctx, svc, grid, ranges, rows)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if w == nil {
				w = os.Stdout
			}
			if err := report(w, format, invalid); err != nil {
				return err
			}

			if len(invalid) > 0 {
				return cli.Exit(fmt.Sprintf("%d invalid cell(s) in %d row(s)", len(invalid), len(rows)), 1)
			}
			return nil
		},
	}
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func loadGrid(path string) (*gridvalidate.Grid, map[string]*rangeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read grid: %w", err)
	}

	var gf gridFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, nil, fmt.Errorf("parse grid %s: %w", path, err)
	}
	if len(gf.Columns) == 0 {
		return nil, nil, fmt.Errorf("grid %s defines no columns", path)
	}

	grid := &gridvalidate.Grid{}
	ranges := make(map[string]*rangeFile)
	for _, c := range gf.Columns {
		grid.Columns = append(grid.Columns, &gridvalidate.ColumnDef{Name: c.Name, Validators: c.Validators})
		if c.Range != nil {
			ranges[c.Name] = c.Range
		}
	}
	return grid, ranges, nil
}

func loadRows(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse rows %s: %w", path, err)
	}
	return rows, nil
}

// addRange registers the numeric bounds of a column as custom validators.
func addRange(svc *gridvalidate.Service, col *gridvalidate.ColumnDef, r *rangeFile) {
	if r == nil {
		return
	}
	if r.Min != nil {
		minimum := *r.Min
		svc.AddColumnValidator(col, "min", minimum, gridvalidate.RuleValidator(func(c gridvalidate.Check) validator.Rule {
			return optional(c.NewValue, validator.MinValue(c.Column.Name, c.NewValue, minimum))
		}), svc.RulePrinter(validator.MinValue(col.Name, nil, minimum)))
	}
	if r.Max != nil {
		maximum := *r.Max
		svc.AddColumnValidator(col, "max", maximum, gridvalidate.RuleValidator(func(c gridvalidate.Check) validator.Rule {
			return optional(c.NewValue, validator.MaxValue(c.Column.Name, c.NewValue, maximum))
		}), svc.RulePrinter(validator.MaxValue(col.Name, nil, maximum)))
	}
}

// optional lets empty cells pass; notNull covers them.
func optional(value any, rule validator.Rule) validator.Rule {
	check := rule.Check
	rule.Check = func() bool { return validator.IsNull(value) || check() }
	return rule
}

func check(ctx context.Context, svc *gridvalidate.Service, grid *gridvalidate.Grid, ranges map[string]*rangeFile, rows []map[string]any) ([]invalidCell, error) {
	if err := svc.InitializeGrid(ctx, grid); err != nil {
		return nil, err
	}
	for _, col := range grid.Columns {
		addRange(svc, col, ranges[col.Name])
	}
	return runRows(ctx, svc, grid, rows)
}

func runRows(ctx context.Context, svc *gridvalidate.Service, grid *gridvalidate.Grid, rows []map[string]any) ([]invalidCell, error) {
	type pending struct {
		index int
		row   *gridvalidate.Row
		run   *gridvalidate.Run
		col   *gridvalidate.ColumnDef
	}

	var runs []pending
	for i, entity := range rows {
		row := gridvalidate.NewRow(entity)
		rowCtx := context.WithValue(ctx, rowIndexKey{}, i+1)
		for _, col := range grid.Columns {
			run, err := svc.RunValidators(rowCtx, row, col, entity[col.Name], unset{})
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			runs = append(runs, pending{index: i + 1, row: row, run: run, col: col})
		}
	}

	var invalid []invalidCell
	for _, p := range runs {
		if err := p.run.Wait(ctx); err != nil && ctx.Err() != nil {
			return nil, err
		}
		if !svc.IsInvalid(p.row, p.col) {
			continue
		}
		title, _ := svc.GetTitleFormattedErrors(p.row, p.col)
		html, _ := svc.GetFormattedErrors(p.row, p.col)
		invalid = append(invalid, invalidCell{Row: p.index, Column: p.col.Name, Title: title, HTML: string(html)})
	}
	return invalid, nil
}

func report(w io.Writer, format string, cells []invalidCell) error {
	for _, c := range cells {
		var err error
		switch format {
		case "html":
			_, err = fmt.Fprintf(w, "<div data-row=\"%d\" data-column=\"%s\">%s</div>\n", c.Row, html.EscapeString(c.Column), c.HTML)
		default:
			_, err = fmt.Fprintf(w, "row %d, column %s: %s", c.Row, c.Column, c.Title)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
