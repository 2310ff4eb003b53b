package model

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field string
	Msg   string
}

// ValidationError collects every invalid field of a record.
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) add(field, format string, args ...any) {
	v.Fields = append(v.Fields, FieldError{Field: field, Msg: fmt.Sprintf(format, args...)})
}

func (v *ValidationError) err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Field + " " + f.Msg
	}
	return "invalid record: " + strings.Join(parts, "; ")
}
