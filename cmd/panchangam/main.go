// Command panchangam prints Malayalam almanac data: the star of the day,
// Kollam era dates and the nakshatra timeline of a day.
package main

import (
	"os"

	"github.com/roach88/panchangam/internal/cli"
)

func main() {
	// Commands report their own errors; only the exit code is left to set.
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
