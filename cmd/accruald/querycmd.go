package main

import (
	"encoding/json"
	"fmt"

	accruald "github.com/iov-one/accrual/cmd/accruald/app"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x/custodian"
	"gopkg.in/urfave/cli.v1"
)

var (
	balanceCommand = cli.Command{
		Action:    balanceAction,
		Name:      "balance",
		Usage:     "Print the claim balance including accrued interest",
		ArgsUsage: "<key name or address>",
		Flags:     []cli.Flag{TimeFlag},
		Category:  "QUERY COMMANDS",
	}
	cashCommand = cli.Command{
		Action:    cashAction,
		Name:      "cash",
		Usage:     "Print the base asset balance of a wallet",
		ArgsUsage: "<key name or address>",
		Category:  "QUERY COMMANDS",
	}
	rateCommand = cli.Command{
		Action:   rateAction,
		Name:     "rate",
		Usage:    "Print the global rate and the total supply",
		Category: "QUERY COMMANDS",
	}
	custodianCommand = cli.Command{
		Action:   custodianAction,
		Name:     "custodian",
		Usage:    "Print the custodian address and its reserve",
		Category: "QUERY COMMANDS",
	}
	chainsCommand = cli.Command{
		Action:   chainsAction,
		Name:     "chains",
		Usage:    "Print the bridge chain permissions",
		Category: "QUERY COMMANDS",
	}
)

func balanceAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "account required")
	}
	addr, err := resolveAddress(ctx.GlobalString(HomeFlag.Name), ctx.Args().First())
	if err != nil {
		return err
	}
	at, err := blockTime(ctx)
	if err != nil {
		return err
	}
	return withApp(ctx, func(a *accruald.Application) error {
		balance, err := a.Balance(at, addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, balance)
		return nil
	})
}

func cashAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "wallet required")
	}
	addr, err := resolveAddress(ctx.GlobalString(HomeFlag.Name), ctx.Args().First())
	if err != nil {
		return err
	}
	return withApp(ctx, func(a *accruald.Application) error {
		balance, err := a.Cash(addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, balance)
		return nil
	})
}

func rateAction(ctx *cli.Context) error {
	return withApp(ctx, func(a *accruald.Application) error {
		rate, err := a.Rate()
		if err != nil {
			return err
		}
		supply, err := a.Supply()
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "rate\t%s\nsupply\t%s\n", rate, supply)
		return nil
	})
}

func custodianAction(ctx *cli.Context) error {
	return withApp(ctx, func(a *accruald.Application) error {
		reserve, err := a.Reserve()
		if err != nil {
			return err
		}
		addr := custodian.Condition().Address()
		b32, err := addr.Bech32(bech32Prefix)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "address\t%s\t%s\nreserve\t%s\n", addr, b32, reserve)
		return nil
	})
}

func chainsAction(ctx *cli.Context) error {
	return withApp(ctx, func(a *accruald.Application) error {
		chains, err := a.Chains()
		if err != nil {
			return err
		}
		for _, c := range chains {
			raw, err := json.Marshal(c)
			if err != nil {
				return errors.Wrapf(errors.ErrHuman, "serialize chain %d: %s", c.RemoteChainID, err)
			}
			fmt.Fprintln(ctx.App.Writer, string(raw))
		}
		return nil
	})
}
