package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"MarketMotion/internal/scheduler"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	common
	runOnStart bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "keep the dataset CSV fresh on a cron schedule" }
func (*watchCmd) Usage() string {
	return `motion watch [-config <file>] [-run-on-start]

  Re-downloads the configured tickers on schedule.refresh_cron and rewrites
  the CSV data file until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.runOnStart, "run-on-start", false, "run one refresh immediately")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := c.init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer c.log.Sync()

	st := c.openStore(cfg)
	defer st.Close()

	col, err := c.collector(cfg, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresh := scheduler.Refresh{
		Collector: col,
		Field:     cfg.Field(),
		InitCash:  cfg.DataSource.InitCash,
		CSVPath:   cfg.Output.CSVPath,
	}
	sched := scheduler.New(ctx, c.log)
	if err := sched.Register(cfg.Schedule.RefreshCron, refresh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.runOnStart {
		if err := sched.RunNow(refresh); err != nil {
			c.log.Error("initial refresh failed", zap.Error(err))
		}
	}
	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	c.log.Info("shutting down", zap.String("signal", s.String()))
	return subcommands.ExitSuccess
}
