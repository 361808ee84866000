package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
)

type mergeCmd struct {
	output string
}

func (*mergeCmd) Name() string { return "merge" }
func (*mergeCmd) Synopsis() string {
	return "concatenate two canonical portfolio tables into one"
}
func (*mergeCmd) Usage() string {
	return `fol merge [-o <output.csv>] <first.csv> <second.csv>

  Concatenates two canonical tables, first-file rows followed by
  second-file rows. Rows are copied verbatim: no deduplication, no
  recomputation of derived fields. A ticker present in both inputs yields
  two rows; deduplicate beforehand if that matters to you.

  Typical use: combine a converted brokerage export with a manually
  maintained table (e.g. crypto holdings).
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "portfolio.csv", "output canonical table")
}

func (c *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: exactly two portfolio tables expected")
		f.Usage()
		return subcommands.ExitUsageError
	}

	first, err := folio.LoadTable(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	second, err := folio.LoadTable(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := folio.SaveTable(c.output, folio.Merge(first, second)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Merged portfolio saved to %s\n", c.output)
	return subcommands.ExitSuccess
}
