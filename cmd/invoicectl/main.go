// Command invoicectl runs invoicing checks and reports from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openReportService).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
