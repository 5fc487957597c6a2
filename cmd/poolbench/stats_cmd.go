package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fmstephe/pool"
)

// newStatsCmd builds the "stats" subcommand: a one-shot snapshot of a freshly
// built pool's capacity/used/remaining counts, as opposed to "run"'s sustained
// benchmark loop. Useful for sanity-checking a given --capacity/--growable
// combination without waiting out a full timed run.
func newStatsCmd() *cobra.Command {
	var capacity int
	var payload int
	var growable bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print size/used/remaining for a freshly built pool and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := pool.NewBuilder[pool.Bytes](pool.NewBytes(payload)).
				WithCapacity(capacity)

			var p poolStats
			if growable {
				p = values.Growable()
			} else {
				p = values.Fixed()
			}

			fmt.Printf("size=%s used=%s remaining=%s\n",
				humanize.Comma(int64(p.Size())),
				humanize.Comma(int64(p.Used())),
				humanize.Comma(int64(p.Remaining())),
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 256, "initial pool capacity")
	cmd.Flags().IntVar(&payload, "payload", 4096, "backing buffer size per pooled value")
	cmd.Flags().BoolVar(&growable, "growable", true, "use a growable pool instead of a fixed one")

	return cmd
}
