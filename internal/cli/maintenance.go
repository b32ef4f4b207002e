package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type repairCmd struct {
	env         *Env
	monthsAhead int
}

func (*repairCmd) Name() string     { return "repair" }
func (*repairCmd) Synopsis() string { return "re-sync debts, drop stale recurring instances and populate months" }
func (*repairCmd) Usage() string {
	return `ledgerctl repair [-ahead <n>]

  Runs the same maintenance pass the server runs at startup.
`
}

func (c *repairCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.monthsAhead, "ahead", 0, "Months after the current one to populate.")
}

func (c *repairCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.monthsAhead < 0 {
		fmt.Fprintln(os.Stderr, "Error: -ahead must not be negative.")
		return subcommands.ExitUsageError
	}
	s, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report, err := s.svc.Repair(ctx, c.monthsAhead)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	// Work done before a failure is still saved.
	if err := s.close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.env.Out, "repaired %d debts, removed %d instances, added %d instances\n",
		len(report.RepairedDebts), report.RemovedInstances, report.AddedInstances)
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type populateCmd struct {
	env   *Env
	year  int
	month int
}

func (*populateCmd) Name() string     { return "populate" }
func (*populateCmd) Synopsis() string { return "materialize recurring rules for a month" }
func (*populateCmd) Usage() string {
	return `ledgerctl populate -year <yyyy> -month <m>

  Adds the instances of every active rule that fall in the month. Dates
  before today are never populated.
`
}

func (c *populateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Calendar year.")
	f.IntVar(&c.month, "month", 0, "Calendar month, 1-12.")
}

func (c *populateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year < 1 || c.month < 1 || c.month > 12 {
		fmt.Fprintln(os.Stderr, "Error: -year and -month (1-12) are required.")
		return subcommands.ExitUsageError
	}
	s, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	added, err := s.svc.Recurring.PopulateMonth(ctx, c.year, time.Month(c.month))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := s.close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, e := range added {
		fmt.Fprintf(c.env.Out, "%s %s %s\n", e.Date, e.Transaction.ID, e.Transaction.Amount)
	}
	fmt.Fprintf(c.env.Out, "added %d instances\n", len(added))
	return subcommands.ExitSuccess
}
