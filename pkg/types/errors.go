package types

import (
	"fmt"
	"strings"
)

// DiagnosticCode classifies a diagnostic.
type DiagnosticCode string

const (
	// L0xxx: Lexical errors
	ErrBadCharacter     DiagnosticCode = "L0101"
	ErrNumberOutOfRange DiagnosticCode = "L0102"

	// S0xxx: Syntax errors
	ErrUnexpectedToken DiagnosticCode = "S0202"
	ErrTooDeep         DiagnosticCode = "S0203"
)

// Diagnostic describes a lexical or syntactic problem found in the source.
type Diagnostic struct {
	Code     DiagnosticCode
	Message  string
	Position int
	Token    string
}

// NewDiagnostic creates a diagnostic at the given byte offset.
func NewDiagnostic(code DiagnosticCode, position int, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

// WithToken records the offending source text.
func (d *Diagnostic) WithToken(text string) *Diagnostic {
	d.Token = text
	return d
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", d.Code, d.Position, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// String returns the human-readable message.
func (d *Diagnostic) String() string {
	return d.Message
}

// Diagnostics is an ordered list of diagnostics in discovery order.
type Diagnostics []*Diagnostic

// Messages returns the message of each diagnostic.
func (ds Diagnostics) Messages() []string {
	if len(ds) == 0 {
		return nil
	}
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Message
	}
	return msgs
}

// Err returns nil when ds is empty and a *DiagnosticsError otherwise.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return &DiagnosticsError{Diagnostics: ds}
}

// DiagnosticsError reports that a source could not be evaluated because
// parsing produced diagnostics.
type DiagnosticsError struct {
	Diagnostics Diagnostics
}

// Error implements the error interface.
func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostics:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		sb.WriteString("\n\t")
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (e *DiagnosticsError) Unwrap() []error {
	errs := make([]error, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		errs[i] = d
	}
	return errs
}

// InternalError is the panic value raised when a syntax tree violates an
// invariant the parser guarantees. It signals a bug, not bad input.
type InternalError struct {
	Message string
	Kind    Kind
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: %s", e.Message, e.Kind)
}
