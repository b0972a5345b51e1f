// Package validation implements declarative per-route input contracts.
// A Schema is defined once next to its route and shared across requests;
// Validate is a pure function of (schema, input).
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"marketplace/internal/domain"
)

type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeInt
	TypeEnum
)

// Field is one constraint in a schema. Zero bounds mean unbounded.
type Field struct {
	Name     string
	Required bool
	Type     FieldType
	MinLen   int
	MaxLen   int
	Min      *float64
	Max      *float64
	Enum     []string
}

// Schema holds fields in declaration order; errors come back in that order.
type Schema struct {
	Fields []Field
}

type Options struct {
	// AbortEarly stops at the first failing field. Multi-field forms leave
	// it false so every problem is reported at once.
	AbortEarly bool
}

// Num is shorthand for numeric range bounds.
func Num(v float64) *float64 { return &v }

// Validate checks input against the schema. On success it returns the
// normalized input: strings trimmed, numeric fields coerced to float64
// (int64 for TypeInt), unknown keys dropped.
func (s Schema) Validate(input map[string]any, opts Options) (map[string]any, []domain.FieldError) {
	normalized := make(map[string]any, len(s.Fields))
	var errs []domain.FieldError

	fail := func(field, msg string) bool {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
		return opts.AbortEarly
	}

	for _, f := range s.Fields {
		raw, present := input[f.Name]
		if !present || raw == nil || isEmptyString(raw) {
			if f.Required {
				if fail(f.Name, fmt.Sprintf("%s is required", f.Name)) {
					return nil, errs
				}
			}
			continue
		}

		switch f.Type {
		case TypeString, TypeEnum:
			str, ok := raw.(string)
			if !ok {
				if fail(f.Name, fmt.Sprintf("%s must be a string", f.Name)) {
					return nil, errs
				}
				continue
			}
			str = strings.TrimSpace(str)
			if f.MinLen > 0 && len(str) < f.MinLen {
				if fail(f.Name, fmt.Sprintf("%s must be at least %d characters", f.Name, f.MinLen)) {
					return nil, errs
				}
				continue
			}
			if f.MaxLen > 0 && len(str) > f.MaxLen {
				if fail(f.Name, fmt.Sprintf("%s must be at most %d characters", f.Name, f.MaxLen)) {
					return nil, errs
				}
				continue
			}
			if f.Type == TypeEnum && !contains(f.Enum, str) {
				if fail(f.Name, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Enum, ", "))) {
					return nil, errs
				}
				continue
			}
			normalized[f.Name] = str

		case TypeNumber, TypeInt:
			num, ok := coerceNumber(raw)
			if !ok {
				if fail(f.Name, fmt.Sprintf("%s must be a number", f.Name)) {
					return nil, errs
				}
				continue
			}
			if f.Type == TypeInt && num != math.Trunc(num) {
				if fail(f.Name, fmt.Sprintf("%s must be an integer", f.Name)) {
					return nil, errs
				}
				continue
			}
			if f.Min != nil && num < *f.Min {
				if fail(f.Name, fmt.Sprintf("%s must be at least %s", f.Name, formatNum(*f.Min))) {
					return nil, errs
				}
				continue
			}
			if f.Max != nil && num > *f.Max {
				if fail(f.Name, fmt.Sprintf("%s must be at most %s", f.Name, formatNum(*f.Max))) {
					return nil, errs
				}
				continue
			}
			if f.Type == TypeInt {
				normalized[f.Name] = int64(num)
			} else {
				normalized[f.Name] = num
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return normalized, nil
}

// coerceNumber accepts JSON numbers and numeric strings off the wire.
// Non-numeric and non-finite values are rejected, never passed through.
func coerceNumber(raw any) (float64, bool) {
	var num float64
	switch v := raw.(type) {
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int64:
		num = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		num = parsed
	default:
		return 0, false
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

func isEmptyString(raw any) bool {
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
