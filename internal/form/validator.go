package form

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

// ValidateStruct works like validation.ValidateStruct but reports every
// violated field at once as a gerr ValidationFailed error.
func ValidateStruct(structPtr interface{}, rules ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, rules...)
	if err == nil {
		return nil
	}

	var ie validation.InternalError
	if errors.As(err, &ie) {
		return gerr.Wrap(gerr.KindInternal, "validation failed internally", err)
	}

	ve, ok := err.(validation.Errors)
	if !ok {
		return gerr.Validation([]gerr.FieldViolation{{Message: formatErrMsg(err.Error())}})
	}

	fields := make([]gerr.FieldViolation, 0, len(ve))
	for field, fe := range ve {
		fields = append(fields, gerr.FieldViolation{
			Field:   field,
			Message: formatErrMsg(fe.Error()),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return gerr.Validation(fields)
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}

func oneOf(values []string) validation.Rule {
	in := make([]interface{}, len(values))
	for i, v := range values {
		in[i] = v
	}
	return validation.In(in...).Error("must be one of: " + strings.Join(values, ", "))
}
