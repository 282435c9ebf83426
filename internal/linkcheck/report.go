package linkcheck

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report prints the human summary of a run.
func Report(w io.Writer, stats Stats) {
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()
	warning := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "files checked: %d\n", stats.Files)
	fmt.Fprintf(w, "links checked: %d\n", stats.TotalLinks)
	if stats.CacheHits > 0 {
		fmt.Fprintf(w, "cache hits:    %d\n", stats.CacheHits)
	}
	if stats.Broken > 0 {
		fmt.Fprintf(w, "broken links:  %s\n", failure(stats.Broken))
	} else {
		fmt.Fprintf(w, "broken links:  %s\n", success(stats.Broken))
	}
	if stats.Warnings > 0 {
		fmt.Fprintf(w, "warnings:      %s\n", warning(stats.Warnings))
	}

	if stats.Failed() {
		fmt.Fprintln(w, failure("FAILED"))
	} else {
		fmt.Fprintln(w, success("OK"))
	}
}
