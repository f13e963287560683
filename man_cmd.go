package main

import (
	"fmt"
	"os"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

const manViewerKeys = `1-9     toggle spoiler N
r       reveal every spoiler
h       hide every spoiler
c       copy the post as plain text
g, G    go to top or bottom
?       toggle help
q       quit`

const manEnvironment = `POSTFMT_CONFIG_HOME     directory holding postfmt.yml
POSTFMT_STYLE           style name or JSON path
POSTFMT_FILTER          comma separated filter keywords or /patterns/
POSTFMT_WATCH           reload the viewed post when it changes (default true)
POSTFMT_SERVER_ADDR     address for postfmt serve
POSTFMT_LOG_FILE        log file (default in the user cache directory)`

var manCmd = &cobra.Command{
	Use:                   "man",
	Short:                 "Generates manpages",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Hidden:                true,
	Args:                  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			return fmt.Errorf("unable to instantiate man page: %w", err)
		}
		manPage = manPage.
			WithSection("Viewer Keys", manViewerKeys).
			WithSection("Environment", manEnvironment)

		if _, err := fmt.Fprint(os.Stdout, manPage.Build(roff.NewDocument())); err != nil {
			return fmt.Errorf("unable to build man page: %w", err)
		}
		return nil
	},
}
