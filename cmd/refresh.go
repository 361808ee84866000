package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/alphavantage"
)

type refreshCmd struct {
	apiKeyFlags
}

func (*refreshCmd) Name() string { return "refresh" }
func (*refreshCmd) Synopsis() string {
	return "refresh the prices of an existing portfolio table in place"
}
func (*refreshCmd) Usage() string {
	return `fol refresh <portfolio.csv>

  Revalues an existing canonical table in place, same file for input and
  output. Every row is kept: when a price cannot be resolved the
  previously stored price is retained. Long-term-hold classification is
  not recomputed, the table already carries it.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	c.apiKeyFlags.setFlags(f)
}

func (c *refreshCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one portfolio table expected")
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	key, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	rows, err := folio.LoadTable(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "Portfolio %q is empty. Check your CSV file.\n", path)
		return subcommands.ExitFailure
	}

	valuer := folio.Valuer{Resolver: alphavantage.NewClient(key)}
	res := valuer.RefreshAll(rows)

	if err := folio.SaveTable(path, res.Holdings); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated portfolio saved to %s\n", path)
	fmt.Printf("Total portfolio value: %s\n", folio.FormatUSD(res.Total))
	return subcommands.ExitSuccess
}
