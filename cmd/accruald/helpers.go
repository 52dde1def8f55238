package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/accrual"
	accruald "github.com/iov-one/accrual/cmd/accruald/app"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"gopkg.in/urfave/cli.v1"
)

// withApp opens the application stored in the home directory for the
// duration of fn.
func withApp(ctx *cli.Context, fn func(*accruald.Application) error) error {
	a, err := accruald.Open(ctx.GlobalString(HomeFlag.Name), logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// blockTime returns the time flag value, or the current time if not set.
func blockTime(ctx *cli.Context) (time.Time, error) {
	raw := ctx.String(TimeFlag.Name)
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInput, "time: %s", err)
	}
	return t, nil
}

func amountFlag(ctx *cli.Context) (coin.Amount, error) {
	raw := ctx.String(AmountFlag.Name)
	if raw == "" {
		return coin.Amount{}, errors.Field("amount", errors.ErrEmpty, "amount is required")
	}
	return coin.ParseAmount(raw)
}

// quantityFlag returns coin.All if the all flag is set, an exact amount
// otherwise.
func quantityFlag(ctx *cli.Context) (coin.Quantity, error) {
	if ctx.Bool(AllFlag.Name) {
		if ctx.String(AmountFlag.Name) != "" {
			return coin.Quantity{}, errors.Wrap(errors.ErrInput, "use either --amount or --all")
		}
		return coin.All, nil
	}
	a, err := amountFlag(ctx)
	if err != nil {
		return coin.Quantity{}, err
	}
	return coin.Exactly(a), nil
}

// addressFlag resolves the flag of given name into an address.
func addressFlag(ctx *cli.Context, name string) (accrual.Address, error) {
	addr, err := resolveAddress(ctx.GlobalString(HomeFlag.Name), ctx.String(name))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return addr, nil
}

// submit signs the message with the signer key and executes it.
func submit(ctx *cli.Context, build func(signer accrual.Address) (accrual.Msg, error)) error {
	key, err := signerKey(ctx)
	if err != nil {
		return err
	}
	at, err := blockTime(ctx)
	if err != nil {
		return err
	}
	msg, err := build(keyAddress(key))
	if err != nil {
		return err
	}
	return withApp(ctx, func(a *accruald.Application) error {
		res, err := a.Submit(at, key, msg)
		if err != nil {
			return err
		}
		return printResult(ctx.App.Writer, res)
	})
}

// printResult writes the log, the data and one line per event.
func printResult(w io.Writer, res *accrual.DeliverResult) error {
	if res.Log != "" {
		fmt.Fprintln(w, res.Log)
	}
	if len(res.Data) != 0 {
		fmt.Fprintf(w, "data\t%s\n", hex.EncodeToString(res.Data))
	}
	for _, e := range res.Events {
		raw, err := json.Marshal(e)
		if err != nil {
			return errors.Wrapf(errors.ErrHuman, "serialize %s: %s", e.EventName(), err)
		}
		fmt.Fprintf(w, "%s\t%s\n", e.EventName(), raw)
	}
	return nil
}
