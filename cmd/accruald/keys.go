package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x/auth"
	"golang.org/x/crypto/ed25519"
	"gopkg.in/urfave/cli.v1"
)

// bech32Prefix is the human readable part of printed addresses.
const bech32Prefix = "acc"

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

var keygenCommand = cli.Command{
	Action:    keygenAction,
	Name:      "keygen",
	Usage:     "Generate a new signing key",
	ArgsUsage: "<name>",
	Category:  "KEY COMMANDS",
	Description: `
Generate a new ed25519 key and store it under the home directory. The key is
referenced by its name in the --signer flag and in address flags.`,
}

func keygenAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "key name required")
	}
	name := ctx.Args().First()
	pub, err := generateKey(ctx.GlobalString(HomeFlag.Name), name)
	if err != nil {
		return err
	}
	addr := auth.PubKeyCondition(pub).Address()
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s\t%s\t%s\n", name, addr, b32)
	return nil
}

func keyPath(home, name string) string {
	return filepath.Join(home, "keys", name+".key")
}

// generateKey creates a new key file. An existing key is never overwritten.
func generateKey(home, name string) (ed25519.PublicKey, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	path := keyPath(home, name)
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "generate key: %s", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "create key directory: %s", err)
	}
	if err := ioutil.WriteFile(path, []byte(hex.EncodeToString(priv.Seed())), 0600); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "write key: %s", err)
	}
	return pub, nil
}

// loadKey reads the key of given name from the home directory.
func loadKey(home, name string) (ed25519.PrivateKey, error) {
	if !isKeyName(name) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key name %q", name)
	}
	raw, err := ioutil.ReadFile(keyPath(home, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
		}
		return nil, errors.Wrapf(errors.ErrInput, "read key: %s", err)
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "malformed key %q", name)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// signerKey returns the key selected by the signer flag.
func signerKey(ctx *cli.Context) (ed25519.PrivateKey, error) {
	name := ctx.String(SignerFlag.Name)
	if name == "" {
		return nil, errors.Field("signer", errors.ErrEmpty, "signer is required")
	}
	return loadKey(ctx.GlobalString(HomeFlag.Name), name)
}

// keyAddress returns the address of a key.
func keyAddress(key ed25519.PrivateKey) accrual.Address {
	return auth.PubKeyCondition(key.Public().(ed25519.PublicKey)).Address()
}

// resolveAddress accepts either a name of a stored key or an address in
// any format accepted by accrual.ParseAddress.
func resolveAddress(home, value string) (accrual.Address, error) {
	if value == "" {
		return nil, errors.ErrEmpty
	}
	if isKeyName(value) {
		if key, err := loadKey(home, value); err == nil {
			return keyAddress(key), nil
		} else if !errors.ErrNotFound.Is(err) {
			return nil, err
		}
	}
	addr, err := accrual.ParseAddress(value)
	if err != nil {
		return nil, errors.Wrapf(err, "neither a key name nor an address: %q", value)
	}
	return addr, nil
}
