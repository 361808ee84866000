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

type buildCmd struct {
	apiKeyFlags
	output   string
	lthYears float64
}

func (*buildCmd) Name() string { return "build" }
func (*buildCmd) Synopsis() string {
	return "value a portfolio table with live prices into a fresh canonical build"
}
func (*buildCmd) Usage() string {
	return `fol build [-o <output.csv>] [-lth-years <years>] <input.csv>

  Runs a fresh-build valuation pass: fetches the current price of every
  market-priced holding, recomputes value, gain/loss and percent gain/loss,
  and classifies each holding's long-term-hold status against the
  configured age threshold.

  Rows missing a ticker, type or quantity are skipped and reported, as are
  rows whose price cannot be resolved. The surviving rows are written to
  the output table; no partial output is written on a fatal error.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	c.apiKeyFlags.setFlags(f)
	f.StringVar(&c.output, "o", "portfolio.csv", "output canonical table")
	f.Float64Var(&c.lthYears, "lth-years", folio.DefaultLTHYears, "long-term-hold age threshold in years")
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input table expected")
		f.Usage()
		return subcommands.ExitUsageError
	}

	key, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	rows, err := folio.LoadTable(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "Portfolio %q is empty. Check your CSV file.\n", f.Arg(0))
		return subcommands.ExitFailure
	}

	valuer := folio.Valuer{Resolver: alphavantage.NewClient(key), LTHYears: c.lthYears}
	res := valuer.Build(rows)
	for _, skip := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Skipping %s\n", skip)
	}

	if err := folio.SaveTable(c.output, res.Holdings); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Portfolio saved to %s\n", c.output)
	fmt.Printf("Total portfolio value: %s\n", folio.FormatUSD(res.Total))
	return subcommands.ExitSuccess
}
