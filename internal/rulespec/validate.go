package rulespec

import "fmt"

// Validation error codes (E100-E199)
const (
	// Schema errors (E100-E109)
	ErrSchemaViolation = "E100" // document does not satisfy the pack schema
	ErrNotYAML         = "E101" // document is not parseable YAML

	// Semantic errors (E110-E119)
	ErrUnknownActorType = "E110" // actor type name not in the known set
	ErrBadExpr          = "E111" // expr condition failed to compile
	ErrEmptySignal      = "E112" // signal has neither immediate nor combo rules
)

// ValidationError describes a single problem found while loading a pack.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
