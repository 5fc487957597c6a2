// Command poolbench drives a Pool under concurrent load and reports
// checkout throughput. It exists purely as a diagnostic/benchmark harness —
// it imports the pool package the same way any other consumer would, and
// exercises no unexported API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "poolbench",
		Short: "Benchmark checkout/release throughput against a pool.Pool",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newStatsCmd())
	return root
}

func newLogger(verbose bool) *zap.Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
	}
	logger, err := cfg.Build()
	if err != nil {
		// zap's own config construction failing means stderr logging is
		// unavailable too; fall back to a no-op logger rather than panic
		// in a CLI whose only job is printing a benchmark report.
		return zap.NewNop()
	}
	return logger
}
