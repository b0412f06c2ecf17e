package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyrdlang/wyrd/internal/gc"
	"github.com/wyrdlang/wyrd/internal/pool"
)

var gcstatCmd = &cobra.Command{
	Use:   "gcstat",
	Short: "Run the eval demo, then one GC cycle, and report pool occupancy",
	Long: `gcstat runs the same builtin-call demo as eval, lets it finish (so no
Level is still active), then drives one mark-and-sweep cycle over
whatever it allocated and prints what the cycle found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alloc := pool.New(0)

		if _, err := runDemo(); err != nil {
			return fmt.Errorf("gcstat: demo evaluation failed: %w", err)
		}

		stats := gc.Collect(alloc, nil)
		fmt.Printf("tracked:  %d\n", stats.Tracked)
		fmt.Printf("marked:   %d\n", stats.Marked)
		fmt.Printf("freed:    %d\n", stats.Freed)
		fmt.Printf("bytes:    %d\n", stats.BytesReclaimed)
		fmt.Printf("duration: %s\n", stats.Duration)
		return nil
	},
}
