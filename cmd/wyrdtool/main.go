// Command wyrdtool is a thin walkthrough of the embedding API spec.md §6
// describes: it builds programs as cell arrays directly (there is no
// scanner in scope) and drives them through internal/level's trampoline.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
