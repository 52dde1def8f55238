package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of a model or message attribute to an error, so
// that validation failures can be reported per attribute. Nil is returned
// for a nil error, which lets validation code call it unconditionally.
//
// Attribute names use Go naming. Nested attributes are joined with a dot
// and list elements use their index, for example Add.0.RemoteLedger.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: fieldName, desc: description, parent: err}
}

// AppendField adds a field error to the collection. Both arguments may be
// nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

func (e *fieldError) Field() string { return e.field }

// FieldErrors returns all errors declared for given attribute name. Errors
// collected with Append are searched one by one. The search stops at the
// first match on each branch, so a field error wrapping another field error
// of the same name is returned once.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == fieldName {
		return []error{err}
	}
	switch e := err.(type) {
	case unpacker:
		var found []error
		for _, child := range e.Unpack() {
			found = append(found, FieldErrors(child, fieldName)...)
		}
		return found
	case causer:
		return FieldErrors(e.Cause(), fieldName)
	default:
		return nil
	}
}

type fielder interface {
	Field() string
}
