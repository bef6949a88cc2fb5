package pricing

import "fmt"

// ValidationError indicates that a calculator input is outside its valid
// domain. Calculations fail fast on it: no partial result is produced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func validatePercent(field string, value float64) error {
	if value < 0 || value > 100 {
		return invalidf(field, "deve estar entre 0 e 100, recebido %v", value)
	}
	return nil
}

func validateNonNegative(field string, value float64) error {
	if value < 0 {
		return invalidf(field, "não pode ser negativo, recebido %v", value)
	}
	return nil
}
