package display

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestJSONFormatter(t *testing.T) {
	formatter := NewJSONFormatter()

	t.Run("FormatSummary", func(t *testing.T) {
		result, err := formatter.FormatSummary(map[string]int{"accounts": 2})
		if err != nil {
			t.Fatalf("FormatSummary failed: %v", err)
		}

		var data map[string]int
		if err := json.Unmarshal([]byte(result), &data); err != nil {
			t.Fatalf("Invalid JSON output: %v", err)
		}
		if data["accounts"] != 2 {
			t.Errorf("Expected accounts 2, got %v", data["accounts"])
		}
	})

	t.Run("FormatTable", func(t *testing.T) {
		headers := []string{"HOST", "PORT"}
		rows := [][]string{
			{"example.com", "22"},
			{"db1.example.com", "2222"},
		}

		result, err := formatter.FormatTable(headers, rows)
		if err != nil {
			t.Fatalf("FormatTable failed: %v", err)
		}

		var data []map[string]string
		if err := json.Unmarshal([]byte(result), &data); err != nil {
			t.Fatalf("Invalid JSON output: %v", err)
		}
		if len(data) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(data))
		}
		if data[0]["HOST"] != "example.com" || data[0]["PORT"] != "22" {
			t.Errorf("First row data incorrect: %v", data[0])
		}
	})

	t.Run("FormatStatusMessage", func(t *testing.T) {
		result, err := formatter.FormatStatusMessage("ERROR", "load failed")
		if err != nil {
			t.Fatalf("FormatStatusMessage failed: %v", err)
		}

		var data map[string]string
		if err := json.Unmarshal([]byte(result), &data); err != nil {
			t.Fatalf("Invalid JSON output: %v", err)
		}
		if data["level"] != "ERROR" || data["message"] != "load failed" {
			t.Errorf("Status message data incorrect: %v", data)
		}
	})
}

func TestYAMLFormatter(t *testing.T) {
	formatter := NewYAMLFormatter()

	t.Run("FormatSummary", func(t *testing.T) {
		result, err := formatter.FormatSummary(map[string]int{"accounts": 2})
		if err != nil {
			t.Fatalf("FormatSummary failed: %v", err)
		}

		var data map[string]int
		if err := yaml.Unmarshal([]byte(result), &data); err != nil {
			t.Fatalf("Invalid YAML output: %v", err)
		}
		if data["accounts"] != 2 {
			t.Errorf("Expected accounts 2, got %v", data["accounts"])
		}
	})

	t.Run("FormatTable", func(t *testing.T) {
		result, err := formatter.FormatTable([]string{"HOST"}, [][]string{{"example.com"}})
		if err != nil {
			t.Fatalf("FormatTable failed: %v", err)
		}

		var data []map[string]string
		if err := yaml.Unmarshal([]byte(result), &data); err != nil {
			t.Fatalf("Invalid YAML output: %v", err)
		}
		if len(data) != 1 || data[0]["HOST"] != "example.com" {
			t.Errorf("Table data incorrect: %v", data)
		}
	})
}

func TestCompactFormatter(t *testing.T) {
	formatter := NewCompactFormatter()

	t.Run("FormatTable", func(t *testing.T) {
		result, err := formatter.FormatTable([]string{"HOST", "PORT"}, [][]string{{"example.com", "22"}})
		if err != nil {
			t.Fatalf("FormatTable failed: %v", err)
		}

		lines := strings.Split(result, "\n")
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d: %q", len(lines), result)
		}
		if lines[0] != "HOST\tPORT" {
			t.Errorf("Header line = %q", lines[0])
		}
		if lines[1] != "example.com\t22" {
			t.Errorf("Row line = %q", lines[1])
		}
	})

	t.Run("FormatTablePadsShortRows", func(t *testing.T) {
		result, err := formatter.FormatTable([]string{"A", "B"}, [][]string{{"x"}})
		if err != nil {
			t.Fatalf("FormatTable failed: %v", err)
		}
		if !strings.HasSuffix(result, "x\t") {
			t.Errorf("Short row not padded: %q", result)
		}
	})

	t.Run("FormatStatusMessage", func(t *testing.T) {
		result, err := formatter.FormatStatusMessage("SUCCESS", "layout valid")
		if err != nil {
			t.Fatalf("FormatStatusMessage failed: %v", err)
		}
		if result != "STATUS:SUCCESS:layout valid" {
			t.Errorf("Status message = %q", result)
		}
	})

	t.Run("CustomSeparator", func(t *testing.T) {
		f := NewCompactFormatter()
		f.SetSeparator(",")
		result, err := f.FormatTable([]string{"A", "B"}, [][]string{{"1", "2"}})
		if err != nil {
			t.Fatalf("FormatTable failed: %v", err)
		}
		if !strings.Contains(result, "1,2") {
			t.Errorf("Custom separator not applied: %q", result)
		}
	})
}

func TestFormatterRegistry(t *testing.T) {
	registry := NewFormatterRegistry()

	for _, format := range []OutputFormat{FormatJSON, FormatYAML, FormatCompact} {
		if _, ok := registry.GetFormatter(format); !ok {
			t.Errorf("Registry missing formatter for %s", format)
		}
	}

	if _, ok := registry.GetFormatter(FormatTable); ok {
		t.Error("Registry should not contain a table formatter")
	}
}

func TestValidOutputFormat(t *testing.T) {
	for _, name := range []string{"table", "json", "yaml", "compact"} {
		if !ValidOutputFormat(name) {
			t.Errorf("ValidOutputFormat(%q) = false", name)
		}
	}
	if ValidOutputFormat("xml") {
		t.Error("ValidOutputFormat(xml) = true")
	}
}
