// Package display renders user-facing output: status messages, layout
// summaries, and tables, in plain text or machine-readable formats.
// Log lines go to the logging package; everything here is the product
// of a command, not diagnostics.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Config controls how the service renders output.
type Config struct {
	ColorEnabled bool
	Theme        string
	OutputFormat OutputFormat
	Quiet        bool
	Writer       io.Writer
}

// DefaultConfig returns the default display configuration.
func DefaultConfig() Config {
	return Config{
		ColorEnabled: true,
		Theme:        "dark",
		OutputFormat: FormatTable,
		Writer:       os.Stdout,
	}
}

// Service renders status messages, headers, tables, and summaries
// according to one output configuration.
type Service struct {
	config   Config
	colors   ColorSystem
	registry *FormatterRegistry
	writer   io.Writer
}

// NewService creates a display service.
func NewService(config Config) *Service {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.OutputFormat == "" {
		config.OutputFormat = FormatTable
	}

	theme := GetThemeByName(config.Theme)
	if !config.ColorEnabled {
		theme = PlainTextTheme()
	}

	return &Service{
		config:   config,
		colors:   NewColorSystem(theme),
		registry: NewFormatterRegistry(),
		writer:   config.Writer,
	}
}

// SetOutput redirects all rendered output to w.
func (s *Service) SetOutput(w io.Writer) {
	s.writer = w
}

// Format returns the configured output format.
func (s *Service) Format() OutputFormat {
	return s.config.OutputFormat
}

// Success prints a success message
func (s *Service) Success(message string) {
	s.printStatusMessage("SUCCESS", message, s.colors.Theme().Success)
}

// Warning prints a warning message
func (s *Service) Warning(message string) {
	s.printStatusMessage("WARNING", message, s.colors.Theme().Warning)
}

// Error prints an error message
func (s *Service) Error(message string) {
	s.printStatusMessage("ERROR", message, s.colors.Theme().Error)
}

// Info prints an info message, suppressed in quiet mode
func (s *Service) Info(message string) {
	if s.config.Quiet {
		return
	}
	s.printStatusMessage("INFO", message, s.colors.Theme().Info)
}

// Header prints a section header, suppressed in quiet mode and in
// machine-readable formats.
func (s *Service) Header(title string) {
	if s.config.Quiet || s.machineFormat() {
		return
	}

	text := fmt.Sprintf("%s\n%s\n", title, strings.Repeat("=", len(title)))
	if s.useColor() {
		text = s.colors.Colorize(text, s.colors.Theme().Primary)
	}
	fmt.Fprint(s.writer, text)
}

// Table renders a table in the configured format.
func (s *Service) Table(headers []string, rows [][]string) {
	if s.machineFormat() {
		formatter, _ := s.registry.GetFormatter(s.config.OutputFormat)
		output, err := formatter.FormatTable(headers, rows)
		if err != nil {
			fmt.Fprintf(s.writer, "Error formatting table: %v\n", err)
			return
		}
		fmt.Fprintln(s.writer, output)
		return
	}

	tf := NewTableFormatter(s.tableColors())
	tf.SetHeaders(headers)
	for _, row := range rows {
		tf.AddRow(row)
	}
	fmt.Fprint(s.writer, tf.Render())
}

// Summary renders a structured payload in the configured machine format.
// In table format the caller is expected to render its own sections.
func (s *Service) Summary(payload interface{}) error {
	formatter, ok := s.registry.GetFormatter(s.config.OutputFormat)
	if !ok {
		return fmt.Errorf("unsupported output format: %s", s.config.OutputFormat)
	}

	output, err := formatter.FormatSummary(payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.writer, output)
	return nil
}

func (s *Service) printStatusMessage(level, message string, clr Color) {
	if s.machineFormat() {
		formatter, _ := s.registry.GetFormatter(s.config.OutputFormat)
		output, err := formatter.FormatStatusMessage(level, message)
		if err != nil {
			fmt.Fprintf(s.writer, "Error formatting status message: %v\n", err)
			return
		}
		fmt.Fprintln(s.writer, output)
		return
	}

	prefix := fmt.Sprintf("[%s]", level)
	if s.useColor() {
		prefix = s.colors.Colorize(prefix, clr)
	}
	fmt.Fprintf(s.writer, "%s %s\n", prefix, message)
}

func (s *Service) machineFormat() bool {
	switch s.config.OutputFormat {
	case FormatJSON, FormatYAML, FormatCompact:
		return true
	}
	return false
}

func (s *Service) useColor() bool {
	return s.config.ColorEnabled && s.colors.IsColorSupported()
}

func (s *Service) tableColors() ColorSystem {
	if s.useColor() {
		return s.colors
	}
	return nil
}
