package app

import (
	"io"

	"github.com/anon987654321/promptkit/internal/cmd/emoji"
	"github.com/anon987654321/promptkit/internal/cmd/output"
)

// render writes a report to w in the configured format: the text form
// for terminals, the structured form for json and yaml.
func (a *App) render(w io.Writer, data any, lines output.Lines) error {
	format := output.DetectFormat(a.config.Format)
	if format == output.FormatText || format == "" {
		return output.NewFormatter(output.FormatText).Format(w, lines)
	}
	return output.NewFormatter(format).Format(w, data)
}

// statusSymbol returns the success or error symbol for a check outcome.
func statusSymbol(ok bool) string {
	if ok {
		return emoji.Success
	}
	return emoji.Error
}

// limitNames returns at most n names, with a trailing marker when the
// list was truncated.
func limitNames(names []string, n int) []string {
	if len(names) <= n {
		return names
	}
	limited := make([]string, 0, n+1)
	limited = append(limited, names[:n]...)
	return append(limited, "...")
}
