// Package logger builds slog loggers from functional options and adds
// attributes taken from context.Context to every record.
//
// New picks a text or JSON handler and wraps it in a handler that runs the
// registered ContextExtractor callbacks before delegating. Decorate installs
// extra extractors on a logger created elsewhere, merging them with any the
// logger already has.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("GRIDVALIDATE_ENVIRONMENT"), "gridcheck"),
//	    logger.WithContextValue("rows_file", rowsFileKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	ctx := context.WithValue(ctx, rowsFileKey{}, "rows.yaml")
//	log.InfoContext(ctx, "cell validated",
//	    logger.Column("age"),
//	    logger.ValidatorType("minLength"),
//	)
//
// # Options
//
// WithEnvironment applies a preset: development logs text from debug level,
// staging and production log JSON from info level. WithLevel, WithFormat and
// WithOutput override it. WithAttr attaches static attributes.
// ParseEnvironment, ParseLevel and ParseFormat turn configuration strings
// into option values.
//
// Helpers such as Column, ValidatorType and Error in attr.go keep attribute
// names consistent. Error and Errors return an empty attribute for nil errors,
// so they can be passed without a nil check.
package logger
