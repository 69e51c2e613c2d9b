package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes reported by the mapper check.
const (
	CodeSourceNotFound = "source_not_found"
	CodeTargetNotFound = "target_not_found"
	CodeAmbiguous      = "ambiguous"
	CodeTypeMismatch   = "type_mismatch"
	CodeNotReadable    = "not_readable"
	CodeNotWritable    = "not_writable"
	CodeDynamicType    = "dynamic_type"
	CodeMapped         = "mapped"
)

// Diagnostics holds all findings of a check.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code is one of the Code* constants.
	Code    string
	Message string
	// TypePair is "source->target".
	TypePair string
	// Member is the member name the finding is about.
	Member string
	// Suggestions are close names that do exist.
	Suggestions []string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typePair, member string, suggestions ...string) {
	d.Add(Diagnostic{SeverityError, code, message, typePair, member, suggestions})
}

func (d *Diagnostics) AddWarning(code, message, typePair, member string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, TypePair: typePair, Member: member})
}

func (d *Diagnostics) AddInfo(code, message, typePair, member string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, TypePair: typePair, Member: member})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Codes lists the codes of every finding, errors first.
func (d *Diagnostics) Codes() []string {
	var out []string
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			out = append(out, diag.Code)
		}
	}

	return out
}

// Error combines all error findings, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[src->dst] Member: [code] message (try: a, b)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypePair != "" {
		prefix = append(prefix, "["+d.TypePair+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (try: " + strings.Join(d.Suggestions, ", ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
