package main

import (
	"os"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"
)

var (
	// General settings
	HomeFlag = cli.StringFlag{
		Name:  "home",
		Usage: "directory to store the state and the keys under",
		Value: filepath.Join(os.ExpandEnv("$HOME"), ".accrual"),
	}
	LogLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "lowest level of logged messages (debug, info, error, none)",
		Value: "info",
	}

	// Transaction settings
	SignerFlag = cli.StringFlag{
		Name:  "signer",
		Usage: "name of the key signing the transaction",
	}
	TimeFlag = cli.StringFlag{
		Name:  "time",
		Usage: "block time in RFC3339 format (default now)",
	}
	AmountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "decimal amount",
	}
	AllFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "use the whole settled balance instead of --amount",
	}
	ToFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient key name or address",
	}
	FromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "owner key name or address",
	}
	SpenderFlag = cli.StringFlag{
		Name:  "spender",
		Usage: "spender key name or address",
	}
	HolderFlag = cli.StringFlag{
		Name:  "holder",
		Usage: "role holder key name or address",
	}
	RoleFlag = cli.StringFlag{
		Name:  "role",
		Usage: "role name",
		Value: "mint_burn",
	}
	RateFlag = cli.StringFlag{
		Name:  "rate",
		Usage: "per second rate scaled by 1e18",
	}
	MemoFlag = cli.StringFlag{
		Name:  "memo",
		Usage: "optional note attached to the transfer",
	}
)
