// FILE: logmerge/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"logmerge/src/internal/core"

	"github.com/lixenwraith/log"
)

// DefaultTextTemplate is the tab-separated merged layout
const DefaultTextTemplate = "{{.Time}}\t{{.Source}}\t{{.Message}}"

// TextOptions configures the text formatter
type TextOptions struct {
	Template string
}

// TextFormatter produces human-readable lines using templates
type TextFormatter struct {
	options  TextOptions
	template *template.Template
	logger   *log.Logger
}

// NewTextFormatter creates a new text formatter; nil options use the
// tab-separated layout
func NewTextFormatter(opts *TextOptions, logger *log.Logger) (*TextFormatter, error) {
	f := &TextFormatter{logger: logger}
	if opts != nil {
		f.options = *opts
	}
	if f.options.Template == "" {
		f.options.Template = DefaultTextTemplate
	}

	funcMap := template.FuncMap{
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("entry").Funcs(funcMap).Parse(f.options.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Format renders the entry using the template
func (f *TextFormatter) Format(entry core.LogEntry) ([]byte, error) {
	data := map[string]any{
		"Time":    entry.Display,
		"Key":     int64(entry.Key),
		"Source":  entry.Source,
		"Message": core.TrimTerminator(entry.Message),
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		fallback := fmt.Sprintf("%s\t%s\t%s\n", entry.Display, entry.Source, core.TrimTerminator(entry.Message))
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Header lists the merged sources, sorted
func (f *TextFormatter) Header(labels []string) []byte {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)

	var buf bytes.Buffer
	buf.WriteString("------ Files merged\n")
	for _, l := range sorted {
		buf.WriteString("  ")
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	buf.WriteString("------\n")
	return buf.Bytes()
}

// Name returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}
