package argv

import (
	"fmt"
	"strings"
)

// ErrorType categorizes parse failures. The engine produces structured
// error data only; rendering for end users belongs to the caller.
type ErrorType string

const (
	ErrorTypeUnknownOption       ErrorType = "unknown_option"
	ErrorTypeAmbiguousOption     ErrorType = "ambiguous_option"
	ErrorTypeInsufficientValues  ErrorType = "insufficient_values"
	ErrorTypeValueNotAllowed     ErrorType = "value_not_allowed"
	ErrorTypeDuplicateOption     ErrorType = "duplicate_option"
	ErrorTypeUnknownSubcommand   ErrorType = "unknown_subcommand"
	ErrorTypeAmbiguousSubcommand ErrorType = "ambiguous_subcommand"
	ErrorTypeUnexpectedArgument  ErrorType = "unexpected_argument"
)

// ParseError is the single failure value a parse returns. It always carries
// the full token vector, the offending token index, the command level and
// the subcommand path traversed so far, so a caller can render a precise
// message without re-parsing.
type ParseError struct {
	Type    ErrorType
	Tokens  []string
	Index   int
	Command string
	Path    []string

	// Option is the canonical option name involved, or the raw name as
	// typed when resolution failed. Positional names the positional spec
	// a grouping failure could not satisfy.
	Option     string
	Positional string

	// Candidates lists every match of an ambiguous abbreviation, sorted.
	Candidates []string
	// Occurrences lists every token index at which a duplicate option was
	// seen, including the offending one.
	Occurrences []int
	// Suggestion is the closest known name to an unknown one, when a
	// plausible one exists. Structured data, not a rendered message.
	Suggestion string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	if e.Option != "" {
		fmt.Fprintf(&b, " %q", e.Option)
	} else if e.Positional != "" {
		fmt.Fprintf(&b, " %q", e.Positional)
	}
	fmt.Fprintf(&b, " at index %d", e.Index)
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " (command path %s)", strings.Join(e.Path, " "))
	}
	return b.String()
}

// SpecErrorType categorizes specification construction failures. These
// signal a programming mistake, never a user-input problem.
type SpecErrorType string

const (
	SpecErrorDuplicateName   SpecErrorType = "duplicate_name"
	SpecErrorInvalidArity    SpecErrorType = "invalid_arity"
	SpecErrorInvalidName     SpecErrorType = "invalid_name"
	SpecErrorInvalidNegation SpecErrorType = "invalid_negation"
	SpecErrorInvalidMode     SpecErrorType = "invalid_mode"
)

// SpecError is raised only while building a specification. A successfully
// built spec is guaranteed valid, so parsing performs no re-validation.
type SpecError struct {
	Type    SpecErrorType
	Command string
	Name    string
	Detail  string
}

func (e *SpecError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	if e.Command != "" {
		fmt.Fprintf(&b, " in command %q", e.Command)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, ": %q", e.Name)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}
