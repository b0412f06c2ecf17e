package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wyrdtool",
	Short: "Embedding-API walkthrough for the wyrd evaluation core",
	Long: `wyrdtool exercises wyrd's embedding API end to end without a textual
scanner: programs are assembled as cell arrays directly, the way a host
embedding the core would, and run through the same trampoline a real
evaluation uses.`,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(gcstatCmd)
	rootCmd.AddCommand(traceCmd)
}
