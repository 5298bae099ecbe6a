package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"MarketMotion/internal/dataset"
)

// downloadCmd holds the flags for the 'download' subcommand.
type downloadCmd struct {
	common
	out      string
	initCash float64
	columns  string
}

func (*downloadCmd) Name() string     { return "download" }
func (*downloadCmd) Synopsis() string { return "download price history into a CSV data file" }
func (*downloadCmd) Usage() string {
	return `motion download [-config <file>] [-o <file.csv>] [-init-cash n] [-select tickers]

  Fetches the configured tickers, reshapes them into a flat table and writes
  the CSV data file scenes render from. With -init-cash the prices are
  converted to the value of an initial investment.
`
}

func (c *downloadCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.out, "o", "", "output CSV path (defaults to output.csv_path)")
	f.Float64Var(&c.initCash, "init-cash", 0, "convert prices to portfolio value of this initial cash")
	f.StringVar(&c.columns, "select", "", "comma-separated ticker columns to keep, in order")
}

func (c *downloadCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := c.init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer c.log.Sync()

	out := c.out
	if out == "" {
		out = cfg.Output.CSVPath
	}
	initCash := c.initCash
	if initCash == 0 {
		initCash = cfg.DataSource.InitCash
	}

	st := c.openStore(cfg)
	defer st.Close()

	col, err := c.collector(cfg, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := col.Collect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	t, err := dataset.Flatten(series, cfg.Field())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	t = dataset.DropMissing(t)
	if c.columns != "" {
		if t, err = dataset.Select(t, strings.Split(c.columns, ",")...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if initCash > 0 {
		if t, err = dataset.PortfolioValue(t, initCash); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := dataset.WriteFile(out, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.log.Info("dataset written",
		zap.String("csv", out),
		zap.Int("rows", t.Rows()),
		zap.Int("series", t.Cols()))
	return subcommands.ExitSuccess
}
