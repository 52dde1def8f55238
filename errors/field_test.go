package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Errors are declared once, so that the results can be compared by
	// identity.
	var (
		emptyPayer    = Field("Payer", ErrEmpty, "payer is required")
		zeroAmount    = Field("Amount", ErrAmount, "")
		bigAmount     = Field("Amount", ErrOverflow, "too big")
		lowCapacity   = Field("Capacity", ErrAmount, "below rate")
		limiterErrors = Field("Outbound", Append(
			Field("Rate", ErrAmount, "rate must be positive"),
			Append(lowCapacity, ErrInput),
		), "invalid limiter")

		nestedAmount = Field("Amount", zeroAmount, "outer")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"nil": {
			err:   nil,
			field: "Amount",
			want:  nil,
		},
		"no field information": {
			err:   ErrAmount,
			field: "Amount",
			want:  nil,
		},
		"other field": {
			err:   emptyPayer,
			field: "Amount",
			want:  nil,
		},
		"single match": {
			err:   emptyPayer,
			field: "Payer",
			want:  []error{emptyPayer},
		},
		"all matches of a collection": {
			err:   Append(zeroAmount, emptyPayer, bigAmount),
			field: "Amount",
			want:  []error{zeroAmount, bigAmount},
		},
		"collection inside of a field": {
			err:   limiterErrors,
			field: "Capacity",
			want:  []error{lowCapacity},
		},
		"field holding a collection": {
			err:   limiterErrors,
			field: "Outbound",
			want:  []error{limiterErrors},
		},
		"wrapped field": {
			err:   Wrap(Wrap(emptyPayer, "deposit"), "handler"),
			field: "Payer",
			want:  []error{emptyPayer},
		},
		"wrapped collection": {
			err:   Wrapf(Append(emptyPayer, bigAmount), "msg %d", 1),
			field: "Amount",
			want:  []error{bigAmount},
		},
		"outer field of the same name wins": {
			err:   nestedAmount,
			field: "Amount",
			want:  []error{nestedAmount},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFieldErrorIs(t *testing.T) {
	err := Field("Rate", ErrAmount, "rate %d above capacity %d", 5, 4)
	if !ErrAmount.Is(err) {
		t.Fatalf("field error must keep its kind: %v", err)
	}
	if want := `field "Rate": rate 5 above capacity 4: invalid amount`; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
	if Field("Rate", nil, "ignored") != nil {
		t.Fatal("nil error must not be wrapped")
	}
}
