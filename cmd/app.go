// Package cmd implements the CLI application to manage the canonical
// portfolio table.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists the subcommands of the fol tool.
// A main package iterates Commands to register them on a Commander.
var Commands = []subcommands.Command{
	&importFidelityCmd{},
	&buildCmd{},
	&refreshCmd{},
	&mergeCmd{},
	&topicCmd{},
}

const alphaVantageKeyEnv = "ALPHA_VANTAGE_API_KEY"

// apiKeyFlags is embedded by commands that resolve prices and therefore
// need the AlphaVantage credential.
type apiKeyFlags struct {
	apiKey  string
	keyFile string
}

func (k *apiKeyFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&k.apiKey, "api-key", "", "AlphaVantage API key. This flag takes precedence over the "+alphaVantageKeyEnv+" environment variable. You can get one at https://www.alphavantage.co/")
	f.StringVar(&k.keyFile, "key-file", "", "dotenv file holding "+alphaVantageKeyEnv+" (the local .env is tried by default)")
}

// resolve retrieves the AlphaVantage API key from the flag, the environment
// variable, or a dotenv key file, in that order.
func (k *apiKeyFlags) resolve() (string, error) {
	if k.apiKey != "" {
		return k.apiKey, nil
	}
	if v := os.Getenv(alphaVantageKeyEnv); v != "" {
		return v, nil
	}
	file := k.keyFile
	if file == "" {
		file = ".env"
	}
	values, err := godotenv.Read(file)
	if err != nil {
		// missing default .env is fine, an explicitly named file is not
		if k.keyFile != "" {
			return "", fmt.Errorf("cannot read key file %q: %w", k.keyFile, err)
		}
	} else if v := values[alphaVantageKeyEnv]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("AlphaVantage API key is not set: use -api-key, the %s environment variable, or a dotenv key file", alphaVantageKeyEnv)
}

// printMarkdown renders markdown on the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
