// Command migrate manages the invoicing database schema.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openMigrator).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
