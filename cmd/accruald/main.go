package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/urfave/cli.v1"
)

// accruald is a single node vault of interest bearing claims

var (
	app = cli.NewApp()

	logger log.Logger = log.NewNopLogger()
)

func init() {
	app.Name = filepath.Base(os.Args[0])
	app.Version = accrual.Version()
	app.Usage = "interest bearing claims vault"

	app.Commands = []cli.Command{
		initCommand,
		keygenCommand,
		depositCommand,
		redeemCommand,
		fundCommand,
		transferCommand,
		transferFromCommand,
		approveCommand,
		sendCommand,
		setRateCommand,
		grantCommand,
		revokeCommand,
		applyChainsCommand,
		balanceCommand,
		cashCommand,
		rateCommand,
		custodianCommand,
		chainsCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = []cli.Flag{
		HomeFlag,
		LogLevelFlag,
	}
	app.Before = beforeAction
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func beforeAction(ctx *cli.Context) error {
	l, err := newLogger(ctx.GlobalString(LogLevelFlag.Name))
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// newLogger returns a logger writing to stderr, so that command output can
// be piped.
func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	l := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "accrual")
	return log.NewFilter(l, opt), nil
}
