package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyrdlang/wyrd/internal/cellcore"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Build a program as a cell array and evaluate it",
	Long: `eval constructs a small program directly out of cells (add 10 20) — no
scanner involved, matching spec.md's explicit exclusion of the textual
front end — binds its one builtin, and runs it through the trampoline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := runDemo()
		if err != nil {
			return fmt.Errorf("eval: %w", err)
		}
		fmt.Printf("result: %d\n", cellcore.AsInteger(&out))
		return nil
	},
}
