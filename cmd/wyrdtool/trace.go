package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyrdlang/wyrd/internal/cellcore"
	"github.com/wyrdlang/wyrd/internal/diag"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run the eval demo with debug-level diagnostics on",
	Long: `trace turns internal/diag up to debug level for one evaluation, printing
the same cycle and dispatch chatter a host would see enabling verbose
logging around its own Run call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		diag.SetDebug(true)
		defer diag.SetDebug(false)

		log := diag.Logger().WithField("component", "wyrdtool")
		log.Debug("starting traced evaluation")

		out, err := runDemo()
		if err != nil {
			log.WithError(err).Debug("evaluation failed")
			return fmt.Errorf("trace: %w", err)
		}

		log.WithField("result", cellcore.AsInteger(&out)).Debug("evaluation finished")
		fmt.Printf("result: %d\n", cellcore.AsInteger(&out))
		return nil
	},
}
