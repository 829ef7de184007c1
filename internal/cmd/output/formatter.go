// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/signlib/internal/cmd/table"
	"github.com/agentstation/signlib/pkg/errors"
)

// Format names an output style for --format.
type Format string

// Output formats. Wide is a table with the id and source columns.
const (
	FormatTable Format = "table"
	FormatWide  Format = "wide"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatTable, FormatWide, FormatJSON, FormatYAML}

// IsTable reports whether f renders as a table.
func (f Format) IsTable() bool {
	return f == FormatTable || f == FormatWide || f == ""
}

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(io.Writer, any) error

// Format calls f.
func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

// NewFormatter returns the formatter for format. Table formats expect
// table.Data and fall back to JSON for anything else.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(writeJSON)
	case FormatYAML:
		return FormatterFunc(writeYAML)
	default:
		return FormatterFunc(writeTable)
	}
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false), yaml.UseJSONMarshaler())
	if err != nil {
		return errors.WrapParse("yaml", "", err)
	}
	_, err = w.Write(out)
	return err
}

func writeTable(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return renderTable(w, v)
	case *table.Data:
		return renderTable(w, *v)
	default:
		return writeJSON(w, data)
	}
}

var alignments = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func renderTable(w io.Writer, data table.Data) error {
	var cfg tablewriter.Config
	if n := len(data.ColumnAlignment); n > 0 {
		per := make([]tw.Align, n)
		for i, a := range data.ColumnAlignment {
			if al, ok := alignments[a]; ok {
				per[i] = al
			} else {
				per[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(data.Headers) > 0 {
		t.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

// DetectFormat returns explicit when set, otherwise table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if IsTerminal(os.Stdout) {
		return FormatTable
	}
	return FormatJSON
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseFormat validates s case-insensitively. Empty is allowed and means
// "detect".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "" {
		return f, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", errors.NewValidationError("format", s, "must be one of: "+strings.Join(names, ", "))
}
