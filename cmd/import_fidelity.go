package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/fidelity"
)

type importFidelityCmd struct {
	output string
}

func (*importFidelityCmd) Name() string { return "import-fidelity" }
func (*importFidelityCmd) Synopsis() string {
	return "convert a Fidelity positions export into a canonical portfolio table"
}
func (*importFidelityCmd) Usage() string {
	return `fol import-fidelity [-o <output.csv>] <export.csv>

  Converts a Fidelity "Portfolio Positions" export into the canonical
  portfolio format: non-cash positions in input order, followed by one
  merged cash row per account. Pending-activity line items are folded
  into their account's cash balance instead of being emitted.

  The export carries no purchase dates, so run 'fol build' afterwards
  (optionally after filling in dates by hand) to value the table.
`
}

func (c *importFidelityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "portfolio.csv", "output canonical table")
}

func (c *importFidelityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one export file expected")
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read export %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	holdings, err := fidelity.Convert(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot convert export %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	if err := folio.SaveTable(c.output, holdings); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Converted data saved to %s\n", c.output)
	return subcommands.ExitSuccess
}
