package gridvalidate

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const errorHeaderKey = "validate.error"

// messages returns the printed error of every failed validator in sorted type order.
func (s *Service) messages(row *Row, col *ColumnDef) []string {
	types := s.Errors(row, col)
	if len(types) == 0 {
		return nil
	}

	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, s.printError(col, t))
	}
	return out
}

func (s *Service) printError(col *ColumnDef, validatorType string) string {
	entry, ok := s.registry(col).Get(validatorType)
	if !ok || entry.PrintError == nil {
		return validatorType
	}
	return entry.PrintError(entry.Threshold)
}

// GetFormattedErrors renders the cell errors as trusted HTML: a bold localized
// header followed by one message per failed validator, each ending in <br/>.
// It reports false when the cell has no errors.
func (s *Service) GetFormattedErrors(row *Row, col *ColumnDef) (template.HTML, bool) {
	msgs := s.messages(row, col)
	if len(msgs) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("<p><b>")
	b.WriteString(s.localizer.SafeText(errorHeaderKey))
	b.WriteString("</b></p>")
	for _, m := range msgs {
		b.WriteString(m)
		b.WriteString("<br/>")
	}
	return template.HTML(b.String()), true
}

// GetTitleFormattedErrors is the plain-text form for title attributes: the
// localized header and each message, every line ending in a newline.
func (s *Service) GetTitleFormattedErrors(row *Row, col *ColumnDef) (string, bool) {
	msgs := s.messages(row, col)
	if len(msgs) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(s.localizer.SafeText(errorHeaderKey))
	b.WriteByte('\n')
	for _, m := range msgs {
		b.WriteString(m)
		b.WriteByte('\n')
	}
	return b.String(), true
}

// ErrorsComponent renders GetFormattedErrors for templ hosts. The errors are
// read at render time; a valid cell renders nothing.
func (s *Service) ErrorsComponent(row *Row, col *ColumnDef) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, ok := s.GetFormattedErrors(row, col)
		if !ok {
			return nil
		}
		return templ.Raw(string(html)).Render(ctx, w)
	})
}
