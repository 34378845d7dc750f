package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"
)

// Format is the rendering used for stdout
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", s)
	}
}

// Print writes data as JSON or YAML. Table mode falls back to YAML.
func (m *Manager) Print(data interface{}) error {
	if m.Format == FormatJSON {
		encoder := json.NewEncoder(m.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = m.Writer.Write(out)
	return err
}

func (m *Manager) table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(m.Writer)
	table.SetHeader(headers)

	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
}

func (m *Manager) heading(title string) {
	_, _ = fmt.Fprintf(m.Writer, "\n=== %s ===\n", title)
}

func (m *Manager) line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(m.Writer, format+"\n", args...)
}

// truncatePath keeps the tail of long paths
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
