package logger

import (
	"log/slog"
	"strconv"
)

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Column names the grid column a record refers to.
func Column(name string) slog.Attr {
	return slog.String("column", name)
}

// ValidatorType names the validator (minLength, notNull, ...) a record refers to.
func ValidatorType(name string) slog.Attr {
	return slog.String("validator", name)
}

func RowID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("row_id", id)
}

// Generation is the per-cell validation run counter.
func Generation(n uint64) slog.Attr {
	return slog.Uint64("generation", n)
}

func Outcome(passed bool) slog.Attr {
	if passed {
		return slog.String("outcome", "pass")
	}
	return slog.String("outcome", "fail")
}
