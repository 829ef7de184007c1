package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/notify"
)

// FormatWriter writes notices in the command's output format. It implements
// notify.Notifier so it can be handed straight to the library.
type FormatWriter struct {
	mu     sync.Mutex
	writer io.Writer
	format output.Format
	config WriterConfig
}

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowTimestamp bool
	UseColor      bool
	// MinLevel drops notices below this level. Success counts as info.
	MinLevel notify.Level
}

// NewFormatWriter creates a new FormatWriter for the specified format.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = output.IsTerminal(f)
	}
	return &FormatWriter{
		writer: w,
		format: format,
		config: WriterConfig{UseColor: useColor, MinLevel: notify.LevelInfo},
	}
}

// WithConfig sets the writer configuration.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

// Notify implements notify.Notifier. Write errors are dropped; a notice that
// cannot be shown must not fail the operation that raised it.
func (fw *FormatWriter) Notify(_ context.Context, n notify.Notice) {
	if severity(n.Level) < severity(fw.config.MinLevel) {
		return
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_ = fw.write(n)
}

func (fw *FormatWriter) write(n notify.Notice) error {
	switch fw.format {
	case output.FormatJSON:
		return json.NewEncoder(fw.writer).Encode(fw.toAlertData(n))
	case output.FormatYAML:
		data, err := yaml.Marshal(fw.toAlertData(n))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(fw.writer, "---\n%s", data)
		return err
	default:
		return fw.writeText(n)
	}
}

type alertData struct {
	Level     string `json:"level" yaml:"level"`
	Message   string `json:"message" yaml:"message"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (fw *FormatWriter) toAlertData(n notify.Notice) alertData {
	data := alertData{Level: n.Level.String(), Message: n.Message}
	if fw.config.ShowTimestamp && !n.Time.IsZero() {
		data.Timestamp = n.Time.Format(time.RFC3339)
	}
	return data
}

func (fw *FormatWriter) writeText(n notify.Notice) error {
	message := n.String()
	if fw.config.ShowTimestamp && !n.Time.IsZero() {
		message = n.Time.Format(time.TimeOnly) + " " + message
	}
	if fw.config.UseColor {
		message = Color(n.Level) + message + ResetColor()
	}
	_, err := fmt.Fprintln(fw.writer, message)
	return err
}

var _ notify.Notifier = (*FormatWriter)(nil)
