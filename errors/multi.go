package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are given or all errors are nil, nil is returned. If only one
// non nil error is given, that error is returned without wrapping.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten, so that there is only one level of multi errors.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a collection of errors. It is created using Append
// function and must never contain less than two errors.
type multiErr []error

var _ unpacker = (multiErr)(nil)
var _ causer = (multiErr)(nil)

// Unpack implements unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// Cause returns the first error of the collection, consistent with a fail
// fast approach.
func (errs multiErr) Cause() error {
	return errs[0]
}

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(points, "\n\t"))
}

// unpacker is implemented by errors that are a collection of other errors.
type unpacker interface {
	Unpack() []error
}
