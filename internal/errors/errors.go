// Package errors defines the error taxonomy for schemaforge. Every error
// names the path, module, or ecosystem it concerns so operators can triage
// failures without re-running commands.
package errors

import (
	"errors"
	"fmt"
)

// ValidationError reports bad scaffold input. It is always raised before any
// filesystem mutation, so a ValidationError guarantees nothing was written.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// TemplateError reports a missing or malformed template set. This is a
// configuration failure, not a user-input failure, and is fatal to scaffold.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template set %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ManifestParseError reports a manifest that could not be read or whose
// members section could not be located. Fatal to that ecosystem's sync only.
type ManifestParseError struct {
	Ecosystem string
	Path      string
	Err       error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("%s: parse %s: %v", e.Ecosystem, e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error { return e.Err }

// ManifestWriteError reports a failed write-back. The staged-write sequence
// guarantees the original manifest is untouched when this is returned.
type ManifestWriteError struct {
	Ecosystem string
	Path      string
	Err       error
}

func (e *ManifestWriteError) Error() string {
	return fmt.Sprintf("%s: write %s: %v", e.Ecosystem, e.Path, e.Err)
}

func (e *ManifestWriteError) Unwrap() error { return e.Err }

// StructureError reports missing client directories found by validate.
type StructureError struct {
	Missing int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%d missing client entries", e.Missing)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTemplate reports whether err is (or wraps) a TemplateError.
func IsTemplate(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}
