package assert

import (
	"testing"

	"github.com/iov-one/accrual/errors"
)

// recorder implements Tester and counts failures instead of stopping the
// test.
type recorder struct {
	testing.TB
	failures int
}

func (r *recorder) Fatal(args ...interface{}) {
	r.TB.Log(args...)
	r.failures++
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.TB.Logf(format, args...)
	r.failures++
}

// expectFailure runs the assertion and checks that it failed only if
// failure was expected.
func expectFailure(t *testing.T, want bool, assertion func(Tester)) {
	t.Helper()
	r := &recorder{TB: t}
	assertion(r)
	if got := r.failures > 0; got != want {
		t.Fatalf("want failure %v, got %d failures", want, r.failures)
	}
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same kind":          {want: errors.ErrPayout, got: errors.ErrPayout},
		"different kind":     {want: errors.ErrPayout, got: errors.ErrAmount, wantFail: true},
		"nil expected":       {want: nil, got: errors.ErrRateIncrease, wantFail: true},
		"nil against nil":    {want: nil, got: nil},
		"wrapped":            {want: errors.ErrInsufficientBalance, got: errors.Wrap(errors.ErrInsufficientBalance, "redeem")},
		"kind inside a list": {want: errors.ErrEmpty, got: errors.Append(errors.ErrAmount, errors.ErrEmpty)},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			expectFailure(t, tc.wantFail, func(tt Tester) { IsErr(tt, tc.want, tc.got) })
		})
	}
}

func TestFieldError(t *testing.T) {
	zeroAmount := errors.Field("Amount", errors.ErrAmount, "zero")

	cases := map[string]struct {
		err      error
		field    string
		want     *errors.Error
		wantFail bool
	}{
		"single match": {
			err:   zeroAmount,
			field: "Amount",
			want:  errors.ErrAmount,
		},
		"match of another kind": {
			err:      zeroAmount,
			field:    "Amount",
			want:     errors.ErrOverflow,
			wantFail: true,
		},
		"nil requires no match": {
			err:   zeroAmount,
			field: "Payer",
		},
		"nil fails on a match": {
			err:      zeroAmount,
			field:    "Amount",
			wantFail: true,
		},
		"missing field": {
			err:      zeroAmount,
			field:    "Payer",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
		"two errors of one field are ambiguous": {
			err:      errors.Append(zeroAmount, errors.Field("Amount", errors.ErrAmount, "again")),
			field:    "Amount",
			want:     errors.ErrAmount,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			expectFailure(t, tc.wantFail, func(tt Tester) { FieldError(tt, tc.err, tc.field, tc.want) })
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":               {value: nil},
		"typed nil pointer": {value: nilErr},
		"nil slice":         {value: []byte(nil)},
		"error":             {value: errors.ErrEmpty, wantFail: true},
		"struct":            {value: struct{}{}, wantFail: true},
		"zero integer":      {value: 0, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			expectFailure(t, tc.wantFail, func(tt Tester) { Nil(tt, tc.value) })
		})
	}
}

func TestEqualAndPanics(t *testing.T) {
	expectFailure(t, false, func(tt Tester) { Equal(tt, []int{1, 2}, []int{1, 2}) })
	expectFailure(t, true, func(tt Tester) { Equal(tt, uint64(1), 1) })
	expectFailure(t, false, func(tt Tester) { Panics(tt, func() { panic("boom") }) })
	expectFailure(t, true, func(tt Tester) { Panics(tt, func() {}) })
}
