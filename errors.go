package tagpolicy

import "fmt"

// InputError reports a malformed raw tag payload: unparseable JSON or a
// proposal whose shape violates the contract (empty tag, confidence outside
// [0,1]). Data-quality problems inside a well-formed payload are never
// errors; they come back as reason codes in the result envelope.
type InputError struct {
	Field   string // offending field, when known
	Message string
	Err     error // underlying decode/validation error, when any
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid raw tags: field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid raw tags: %s", e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *InputError) Unwrap() error { return e.Err }

// NewInputError creates a new InputError.
func NewInputError(field, message string, err error) *InputError {
	return &InputError{Field: field, Message: message, Err: err}
}

// ConfigError reports an invalid policy configuration. Policies are
// validated up front so a bad table is caught at load time, never in the
// middle of a batch.
type ConfigError struct {
	Version string // policy version under validation, when known
	Section string // vocabulary, thresholds, conflicts or policy
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("invalid policy %s: %s: %s", e.Version, e.Section, e.Message)
	}
	return fmt.Sprintf("invalid policy: %s: %s", e.Section, e.Message)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(version, section, message string) *ConfigError {
	return &ConfigError{Version: version, Section: section, Message: message}
}
