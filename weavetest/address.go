package weavetest

import (
	"testing"

	"github.com/iov-one/accrual"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// accrual.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) accrual.Address {
	t.Helper()

	addr, err := accrual.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// NewAddress returns the address of a new, random signer.
func NewAddress() accrual.Address {
	return NewCondition().Address()
}
