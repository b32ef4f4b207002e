package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/carson-networks/finance-tracker/internal/date"
)

type balanceCmd struct {
	env       *Env
	accountID string
	asOf      string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "print account balances" }
func (*balanceCmd) Usage() string {
	return `ledgerctl balance [-account <id>] [-d <yyyy-mm-dd>]

  Prints the balance of one account, or of every account, as of a date
  (defaults to today).
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "account", "", "Only print this account.")
	f.StringVar(&c.asOf, "d", "", "Date to compute the balance at.")
}

func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var asOf date.Date
	if c.asOf != "" {
		var err error
		if asOf, err = date.Parse(c.asOf); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	s, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	accounts, err := s.svc.Account.ListAccounts(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	found := false
	for _, a := range accounts {
		if c.accountID != "" && a.ID != c.accountID {
			continue
		}
		found = true
		balance, err := s.svc.Account.Balance(ctx, a.ID, asOf)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(c.env.Out, "%-20s %-12s %s\n", a.Name, a.Type, balance.StringFixed(2))
	}
	if c.accountID != "" && !found {
		fmt.Fprintf(os.Stderr, "Error: account %q not found\n", c.accountID)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
