package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	passLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
	fieldFmt    = color.New(color.FgCyan).SprintFunc()
)

// Report is the outcome of one verification run.
type Report struct {
	Type     string        `yaml:"type"`
	Verified bool          `yaml:"verified"`
	Fields   []string      `yaml:"fields,omitempty"`
	Failure  *FailureEntry `yaml:"failure,omitempty"`
}

// FailureEntry is the serialized form of a Failure.
type FailureEntry struct {
	Category string `yaml:"category"`
	Code     string `yaml:"code"`
	Field    string `yaml:"field,omitempty"`
	Message  string `yaml:"message"`
	Cause    string `yaml:"cause,omitempty"`
}

// NewReport builds a Report for typeName from the run's error.
func NewReport(typeName string, fields []string, err error) *Report {
	r := &Report{
		Type:     typeName,
		Verified: err == nil,
		Fields:   fields,
	}
	if err == nil {
		return r
	}

	f, ok := AsFailure(err)
	if !ok {
		f = &Failure{Category: CategoryUnknown, Message: err.Error()}
	}

	r.Failure = &FailureEntry{
		Category: f.Category.String(),
		Code:     f.Category.Code(),
		Field:    f.Field,
		Message:  f.Message,
	}
	if f.Cause != nil {
		r.Failure.Cause = f.Cause.Error()
	}

	return r
}

// Marshal serializes the report to YAML.
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report for %s: %w", r.Type, err)
	}

	return data, nil
}

// Write renders the report for a terminal. Colors are used only when useColors is set.
func (r *Report) Write(w io.Writer, useColors bool) error {
	_, err := io.WriteString(w, r.format(useColors))
	return err
}

func (r *Report) format(useColors bool) string {
	paint := func(fn func(a ...any) string, s string) string {
		if useColors {
			return fn(s)
		}
		return s
	}

	var sb strings.Builder
	if r.Verified {
		sb.WriteString(paint(passLabel, "PASS"))
		sb.WriteString(" " + r.Type)
		if len(r.Fields) > 0 {
			sb.WriteString(" (" + strings.Join(r.Fields, ", ") + ")")
		}
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(paint(failLabel, "FAIL"))
	sb.WriteString(" " + r.Type)
	if r.Failure == nil {
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, r.Failure.Category))
	sb.WriteString("]")
	if r.Failure.Field != "" {
		sb.WriteString(" field ")
		sb.WriteString(paint(fieldFmt, r.Failure.Field))
	}
	sb.WriteString(": ")
	sb.WriteString(r.Failure.Message)
	sb.WriteString("\n")
	if r.Failure.Cause != "" {
		sb.WriteString("  caused by: " + r.Failure.Cause + "\n")
	}

	return sb.String()
}
