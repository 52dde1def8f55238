package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/weavetest/assert"
	"github.com/iov-one/accrual/x/custodian"
)

// run executes the command line with given home directory and returns its
// output.
func run(t testing.TB, home string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	defer func() { app.Writer = os.Stdout }()
	argv := append([]string{"accruald", "--home", home, "--log-level", "none"}, args...)
	err := app.Run(argv)
	return strings.TrimSpace(out.String()), err
}

// keygen creates a key and returns its address.
func keygen(t testing.TB, home, name string) accrual.Address {
	t.Helper()
	out, err := run(t, home, "keygen", name)
	assert.Nil(t, err)
	cols := strings.Split(out, "\t")
	assert.Equal(t, 3, len(cols))
	assert.Equal(t, name, cols[0])
	addr, err := accrual.ParseAddress(cols[1])
	assert.Nil(t, err)
	return addr
}

func writeGenesis(t testing.TB, home string, owner, alice accrual.Address) string {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"chain_id": "cli-accrual",
		"app_state": map[string]interface{}{
			"conf": map[string]interface{}{
				"acl": map[string]interface{}{"owner": owner},
			},
			"acl": []interface{}{
				map[string]interface{}{"role": "mint_burn", "holder": custodian.Condition().Address()},
			},
			"cash": []interface{}{
				map[string]interface{}{"address": owner, "amount": "1000"},
				map[string]interface{}{"address": alice, "amount": "250000"},
			},
			"ledger": map[string]interface{}{"rate": "50000000000"},
		},
	})
	assert.Nil(t, err)
	path := filepath.Join(home, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(path, raw, 0600))
	return path
}

const (
	start     = "2020-09-13T12:26:40Z"
	hourLater = "2020-09-13T13:26:40Z"
)

func TestCommandLine(t *testing.T) {
	home, err := ioutil.TempDir("", "accruald-cli-")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	owner := keygen(t, home, "owner")
	alice := keygen(t, home, "alice")
	_, err = run(t, home, "keygen", "alice")
	assert.IsErr(t, errors.ErrDuplicate, err)

	out, err := run(t, home, "init", writeGenesis(t, home, owner, alice))
	assert.Nil(t, err)
	assert.Equal(t, "initialized cli-accrual", out)

	out, err = run(t, home, "deposit", "--signer", "alice", "--amount", "100000", "--time", start)
	assert.Nil(t, err)
	assert.Equal(t, true, strings.Contains(out, "custodian/deposited"))

	out, err = run(t, home, "balance", "--time", hourLater, "alice")
	assert.Nil(t, err)
	assert.Equal(t, "100018", out)

	_, err = run(t, home, "redeem", "--signer", "alice", "--all", "--time", hourLater)
	assert.IsErr(t, errors.ErrPayout, err)

	_, err = run(t, home, "fund", "--signer", "owner", "--amount", "18", "--time", hourLater)
	assert.Nil(t, err)

	out, err = run(t, home, "redeem", "--signer", "alice", "--all", "--time", hourLater)
	assert.Nil(t, err)
	assert.Equal(t, true, strings.Contains(out, "paid out 100018"))

	out, err = run(t, home, "cash", alice.String())
	assert.Nil(t, err)
	assert.Equal(t, "250018", out)

	out, err = run(t, home, "rate")
	assert.Nil(t, err)
	assert.Equal(t, "rate\t50000000000\nsupply\t0", out)

	_, err = run(t, home, "set-rate", "--signer", "alice", "--rate", "1", "--time", hourLater)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCommandLineInput(t *testing.T) {
	home, err := ioutil.TempDir("", "accruald-cli-")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	keygen(t, home, "alice")

	cases := map[string]struct {
		args    []string
		wantErr *errors.Error
	}{
		"missing signer": {
			args:    []string{"deposit", "--amount", "1"},
			wantErr: errors.ErrEmpty,
		},
		"unknown signer": {
			args:    []string{"deposit", "--signer", "bob", "--amount", "1"},
			wantErr: errors.ErrNotFound,
		},
		"amount and all": {
			args:    []string{"redeem", "--signer", "alice", "--amount", "1", "--all"},
			wantErr: errors.ErrInput,
		},
		"malformed time": {
			args:    []string{"deposit", "--signer", "alice", "--amount", "1", "--time", "yesterday"},
			wantErr: errors.ErrInput,
		},
		"chain not initialized": {
			args:    []string{"deposit", "--signer", "alice", "--amount", "1"},
			wantErr: errors.ErrState,
		},
		"unknown recipient": {
			args:    []string{"transfer", "--signer", "alice", "--to", "carol", "--amount", "1"},
			wantErr: errors.ErrInput,
		},
		"invalid key name": {
			args:    []string{"keygen", "../alice"},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := run(t, home, tc.args...)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestResolveAddress(t *testing.T) {
	home, err := ioutil.TempDir("", "accruald-cli-")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	alice := keygen(t, home, "alice")

	got, err := resolveAddress(home, "alice")
	assert.Nil(t, err)
	assert.Equal(t, alice, got)

	got, err = resolveAddress(home, alice.String())
	assert.Nil(t, err)
	assert.Equal(t, alice, got)

	b32, err := alice.Bech32(bech32Prefix)
	assert.Nil(t, err)
	got, err = resolveAddress(home, "bech32:"+b32)
	assert.Nil(t, err)
	assert.Equal(t, alice, got)

	_, err = resolveAddress(home, "")
	assert.IsErr(t, errors.ErrEmpty, err)
}
