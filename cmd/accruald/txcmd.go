package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/iov-one/accrual"
	accruald "github.com/iov-one/accrual/cmd/accruald/app"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x/acl"
	"github.com/iov-one/accrual/x/bridge"
	"github.com/iov-one/accrual/x/cash"
	"github.com/iov-one/accrual/x/custodian"
	"github.com/iov-one/accrual/x/ledger"
	"gopkg.in/urfave/cli.v1"
)

var (
	initCommand = cli.Command{
		Action:    initAction,
		Name:      "init",
		Usage:     "Initialize the state from a genesis file",
		ArgsUsage: "<genesis.json>",
		Category:  "STATE COMMANDS",
	}
	depositCommand = cli.Command{
		Action:   depositAction,
		Name:     "deposit",
		Usage:    "Exchange the base asset for claims",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, AmountFlag},
		Category: "CUSTODIAN COMMANDS",
	}
	redeemCommand = cli.Command{
		Action:   redeemAction,
		Name:     "redeem",
		Usage:    "Exchange claims for the base asset",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, AmountFlag, AllFlag},
		Category: "CUSTODIAN COMMANDS",
	}
	fundCommand = cli.Command{
		Action:   fundAction,
		Name:     "fund",
		Usage:    "Top up the custodian reserve",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, AmountFlag},
		Category: "CUSTODIAN COMMANDS",
	}
	transferCommand = cli.Command{
		Action:   transferAction,
		Name:     "transfer",
		Usage:    "Move claims to another account",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, ToFlag, AmountFlag, AllFlag},
		Category: "LEDGER COMMANDS",
	}
	transferFromCommand = cli.Command{
		Action:   transferFromAction,
		Name:     "transfer-from",
		Usage:    "Move claims of another account using an allowance",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, FromFlag, ToFlag, AmountFlag, AllFlag},
		Category: "LEDGER COMMANDS",
	}
	approveCommand = cli.Command{
		Action:   approveAction,
		Name:     "approve",
		Usage:    "Set the allowance of a spender",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, SpenderFlag, AmountFlag},
		Category: "LEDGER COMMANDS",
	}
	setRateCommand = cli.Command{
		Action:   setRateAction,
		Name:     "set-rate",
		Usage:    "Lower the global rate",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, RateFlag},
		Category: "LEDGER COMMANDS",
	}
	sendCommand = cli.Command{
		Action:   sendAction,
		Name:     "send",
		Usage:    "Move the base asset to another wallet",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, ToFlag, AmountFlag, MemoFlag},
		Category: "CASH COMMANDS",
	}
	grantCommand = cli.Command{
		Action:   grantAction,
		Name:     "grant",
		Usage:    "Give a role to an address",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, RoleFlag, HolderFlag},
		Category: "ACL COMMANDS",
	}
	revokeCommand = cli.Command{
		Action:   revokeAction,
		Name:     "revoke",
		Usage:    "Take a role away from its holder",
		Flags:    []cli.Flag{SignerFlag, TimeFlag, RoleFlag},
		Category: "ACL COMMANDS",
	}
	applyChainsCommand = cli.Command{
		Action:    applyChainsAction,
		Name:      "apply-chains",
		Usage:     "Change the bridge chain permissions",
		ArgsUsage: "<changes.json>",
		Flags:     []cli.Flag{SignerFlag, TimeFlag},
		Category:  "BRIDGE COMMANDS",
		Description: `
The changes file contains a JSON object with the "add" list of chain
permissions and the "remove" list of remote chain ids.`,
	}
)

func initAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "genesis file required")
	}
	return withApp(ctx, func(a *accruald.Application) error {
		if err := a.InitChain(ctx.Args().First()); err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "initialized %s\n", a.ChainID())
		return nil
	})
}

func depositAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		amount, err := amountFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &custodian.DepositMsg{Payer: signer, Amount: amount}, nil
	})
}

func redeemAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		q, err := quantityFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &custodian.RedeemMsg{Account: signer, Amount: q}, nil
	})
}

func fundAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		amount, err := amountFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &custodian.FundMsg{From: signer, Amount: amount}, nil
	})
}

func transferAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		to, err := addressFlag(ctx, ToFlag.Name)
		if err != nil {
			return nil, err
		}
		q, err := quantityFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &ledger.TransferMsg{From: signer, To: to, Amount: q}, nil
	})
}

func transferFromAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		from, err := addressFlag(ctx, FromFlag.Name)
		if err != nil {
			return nil, err
		}
		to, err := addressFlag(ctx, ToFlag.Name)
		if err != nil {
			return nil, err
		}
		q, err := quantityFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &ledger.TransferFromMsg{Spender: signer, From: from, To: to, Amount: q}, nil
	})
}

func approveAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		spender, err := addressFlag(ctx, SpenderFlag.Name)
		if err != nil {
			return nil, err
		}
		amount, err := amountFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &ledger.ApproveMsg{Owner: signer, Spender: spender, Amount: amount}, nil
	})
}

func setRateAction(ctx *cli.Context) error {
	return submit(ctx, func(accrual.Address) (accrual.Msg, error) {
		raw := ctx.String(RateFlag.Name)
		if raw == "" {
			return nil, errors.Field("rate", errors.ErrEmpty, "rate is required")
		}
		rate, err := coin.ParseRate(raw)
		if err != nil {
			return nil, err
		}
		return &ledger.SetRateMsg{Rate: rate}, nil
	})
}

func sendAction(ctx *cli.Context) error {
	return submit(ctx, func(signer accrual.Address) (accrual.Msg, error) {
		to, err := addressFlag(ctx, ToFlag.Name)
		if err != nil {
			return nil, err
		}
		amount, err := amountFlag(ctx)
		if err != nil {
			return nil, err
		}
		return &cash.SendMsg{
			Source:      signer,
			Destination: to,
			Amount:      amount,
			Memo:        ctx.String(MemoFlag.Name),
		}, nil
	})
}

func grantAction(ctx *cli.Context) error {
	return submit(ctx, func(accrual.Address) (accrual.Msg, error) {
		holder, err := addressFlag(ctx, HolderFlag.Name)
		if err != nil {
			return nil, err
		}
		return &acl.GrantMsg{Role: ctx.String(RoleFlag.Name), Holder: holder}, nil
	})
}

func revokeAction(ctx *cli.Context) error {
	return submit(ctx, func(accrual.Address) (accrual.Msg, error) {
		return &acl.RevokeMsg{Role: ctx.String(RoleFlag.Name)}, nil
	})
}

func applyChainsAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "changes file required")
	}
	return submit(ctx, func(accrual.Address) (accrual.Msg, error) {
		raw, err := ioutil.ReadFile(ctx.Args().First())
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "read changes: %s", err)
		}
		var msg bridge.ApplyChainsMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "parse changes: %s", err)
		}
		return &msg, nil
	})
}
