package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents different output format options
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCompact OutputFormat = "compact"
)

// ValidOutputFormat reports whether name is a supported output format.
func ValidOutputFormat(name string) bool {
	switch OutputFormat(name) {
	case FormatTable, FormatJSON, FormatYAML, FormatCompact:
		return true
	}
	return false
}

// OutputFormatter renders structured payloads for one machine-readable
// output format. The table format renders natively through
// TableFormatter instead.
type OutputFormatter interface {
	FormatSummary(summary interface{}) (string, error)
	FormatTable(headers []string, rows [][]string) (string, error)
	FormatStatusMessage(level, message string) (string, error)
}

// JSONFormatter implements OutputFormatter for JSON output
type JSONFormatter struct {
	indent string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{indent: "  "}
}

// FormatSummary formats a summary payload as indented JSON
func (f *JSONFormatter) FormatSummary(summary interface{}) (string, error) {
	data, err := json.MarshalIndent(summary, "", f.indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary to JSON: %w", err)
	}
	return string(data), nil
}

// FormatTable formats a table as a JSON array of row objects
func (f *JSONFormatter) FormatTable(headers []string, rows [][]string) (string, error) {
	var data []map[string]string
	for _, row := range rows {
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = row[i]
			} else {
				rowMap[header] = ""
			}
		}
		data = append(data, rowMap)
	}

	jsonData, err := json.MarshalIndent(data, "", f.indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal table to JSON: %w", err)
	}
	return string(jsonData), nil
}

// FormatStatusMessage formats a status message as JSON
func (f *JSONFormatter) FormatStatusMessage(level, message string) (string, error) {
	data, err := json.Marshal(map[string]string{"level": level, "message": message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal status message to JSON: %w", err)
	}
	return string(data), nil
}

// YAMLFormatter implements OutputFormatter for YAML output
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// FormatSummary formats a summary payload as YAML
func (f *YAMLFormatter) FormatSummary(summary interface{}) (string, error) {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// FormatTable formats a table as a YAML sequence of row mappings
func (f *YAMLFormatter) FormatTable(headers []string, rows [][]string) (string, error) {
	var data []map[string]string
	for _, row := range rows {
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = row[i]
			} else {
				rowMap[header] = ""
			}
		}
		data = append(data, rowMap)
	}

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal table to YAML: %w", err)
	}
	return strings.TrimRight(string(yamlData), "\n"), nil
}

// FormatStatusMessage formats a status message as YAML
func (f *YAMLFormatter) FormatStatusMessage(level, message string) (string, error) {
	data, err := yaml.Marshal(map[string]string{"level": level, "message": message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal status message to YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// CompactFormatter implements OutputFormatter for scripting-friendly
// single-line output.
type CompactFormatter struct {
	separator      string
	includeHeaders bool
}

// NewCompactFormatter creates a compact formatter with tab separators
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{
		separator:      "\t",
		includeHeaders: true,
	}
}

// FormatSummary formats a summary payload as single-line JSON
func (f *CompactFormatter) FormatSummary(summary interface{}) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}

// FormatTable formats a table as separator-joined rows (TSV by default)
func (f *CompactFormatter) FormatTable(headers []string, rows [][]string) (string, error) {
	var result strings.Builder

	if f.includeHeaders && len(headers) > 0 {
		result.WriteString(strings.Join(headers, f.separator))
		result.WriteString("\n")
	}

	for _, row := range rows {
		paddedRow := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				paddedRow[i] = row[i]
			}
		}
		result.WriteString(strings.Join(paddedRow, f.separator))
		result.WriteString("\n")
	}

	return strings.TrimRight(result.String(), "\n"), nil
}

// FormatStatusMessage formats a status message as STATUS:level:message
func (f *CompactFormatter) FormatStatusMessage(level, message string) (string, error) {
	return fmt.Sprintf("STATUS:%s:%s", level, message), nil
}

// SetSeparator changes the field separator for table output
func (f *CompactFormatter) SetSeparator(separator string) {
	f.separator = separator
}

// FormatterRegistry manages the machine-readable output formatters
type FormatterRegistry struct {
	formatters map[OutputFormat]OutputFormatter
}

// NewFormatterRegistry creates a registry with the default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[OutputFormat]OutputFormatter),
	}

	registry.Register(FormatJSON, NewJSONFormatter())
	registry.Register(FormatYAML, NewYAMLFormatter())
	registry.Register(FormatCompact, NewCompactFormatter())

	return registry
}

// Register registers a formatter for a specific output format
func (r *FormatterRegistry) Register(format OutputFormat, formatter OutputFormatter) {
	r.formatters[format] = formatter
}

// GetFormatter returns the formatter for the specified format
func (r *FormatterRegistry) GetFormatter(format OutputFormat) (OutputFormatter, bool) {
	formatter, exists := r.formatters[format]
	return formatter, exists
}
