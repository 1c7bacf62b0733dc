package payload

import (
	"fmt"
	"strings"
)

// FieldError reports a field that failed validation. The reason is a
// complete human-readable sentence suitable for direct display.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func fieldErr(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FieldUsage records how much of a field's allowance a payload consumed.
type FieldUsage struct {
	Name    string
	Used    int
	Allowed int
}

// BudgetError reports a serialized payload that exceeds the byte
// budget. For device-config payloads Fields itemizes each field's
// actual length against its maximum so the caller can tell which one
// to shorten.
type BudgetError struct {
	Actual int
	Max    int
	Fields []FieldUsage
}

func (e *BudgetError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "payload too large (%d bytes, max %d)", e.Actual, e.Max)
	if len(e.Fields) > 0 {
		b.WriteString("\nCurrent field usage:\n")
		for _, f := range e.Fields {
			fmt.Fprintf(&b, "  %s: %d/%d chars\n", f.Name, f.Used, f.Allowed)
		}
		b.WriteString("\nNote: you cannot max out all fields simultaneously.\n")
		b.WriteString("Reduce the longest fields (MQTT host, SSID, or passwords) to fit.")
	}
	return b.String()
}
