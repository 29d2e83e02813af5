// Package output renders estimation and portfolio reports for humans
// and machines. No cost logic belongs here.
package output

import (
	"encoding/json"
	"io"

	"compliance-cost/core/engine"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal rendering
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderEstimate writes one estimation report
	RenderEstimate(w io.Writer, report *engine.EstimationReport) error

	// RenderPortfolio writes a portfolio report
	RenderPortfolio(w io.Writer, report *engine.PortfolioReport) error
}

// New returns the formatter for a format name; unknown names get JSON
func New(format string, noColor bool) Formatter {
	switch Format(format) {
	case FormatCLI:
		return NewCLIFormatter(noColor)
	default:
		return JSONFormatter{}
	}
}

// JSONFormatter renders reports as indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (JSONFormatter) Format() Format {
	return FormatJSON
}

// RenderEstimate writes the report as JSON
func (JSONFormatter) RenderEstimate(w io.Writer, report *engine.EstimationReport) error {
	return writeJSON(w, report)
}

// RenderPortfolio writes the report as JSON
func (JSONFormatter) RenderPortfolio(w io.Writer, report *engine.PortfolioReport) error {
	return writeJSON(w, report)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
