package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

type importCmd struct {
	env       *Env
	accountID string
	file      string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a CSV bank statement into an account" }
func (*importCmd) Usage() string {
	return `ledgerctl import -account <id> -file <statement.csv>

  Reads rows of date,amount,description[,category]. Negative amounts are
  spending. A leading header row is ignored. Rows matching an existing
  transaction by date, amount and description are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "account", "", "Account the statement belongs to.")
	f.StringVar(&c.file, "file", "", "CSV statement to import.")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.accountID == "" || c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -account and -file are required.")
		return subcommands.ExitUsageError
	}

	f, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	candidates, malformed, err := readStatement(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, line := range malformed {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", line)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	result, err := s.svc.Import.Import(ctx, c.accountID, candidates)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := s.close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.env.Out, "added %d, skipped %d, rejected %d\n", result.Added, result.Skipped, len(result.Rejected)+len(malformed))
	for _, r := range result.Rejected {
		fmt.Fprintf(c.env.Out, "  row %d: %s\n", r.Row+1, r.Reason)
	}
	return subcommands.ExitSuccess
}

// readStatement parses CSV rows into import candidates. Rows whose amount
// does not parse are reported back as messages instead of candidates.
func readStatement(r io.Reader) ([]ledger.ImportCandidate, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var candidates []ledger.ImportCandidate
	var malformed []string
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) < 3 {
			malformed = append(malformed, fmt.Sprintf("row %d: expected date,amount,description", row))
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			if row == 1 {
				continue
			}
			malformed = append(malformed, fmt.Sprintf("row %d: invalid amount %q", row, record[1]))
			continue
		}
		candidate := ledger.ImportCandidate{
			Date:        strings.TrimSpace(record[0]),
			Amount:      amount,
			Description: strings.TrimSpace(record[2]),
		}
		if len(record) > 3 {
			candidate.Category = strings.TrimSpace(record[3])
		}
		candidates = append(candidates, candidate)
	}
	return candidates, malformed, nil
}
