package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmstephe/pool"
)

type runConfig struct {
	workers     int
	duration    time.Duration
	capacity    int
	payload     int
	growable    bool
	metricsAddr string
	verbose     bool
}

func newRunCmd() *cobra.Command {
	cfg := &runConfig{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Hammer a Pool[pool.Bytes] with concurrent checkout/release cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.workers, "workers", 8, "number of concurrent goroutines checking values out")
	cmd.Flags().DurationVar(&cfg.duration, "duration", 5*time.Second, "how long to run the benchmark")
	cmd.Flags().IntVar(&cfg.capacity, "capacity", 256, "initial pool capacity")
	cmd.Flags().IntVar(&cfg.payload, "payload", 4096, "backing buffer size per pooled value; a quarter of it is appended to each checked-out value per cycle")
	cmd.Flags().BoolVar(&cfg.growable, "growable", true, "use a growable pool instead of a fixed one")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "if set, serve Prometheus gauges on this address (e.g. :9090) for the run's duration")
	cmd.Flags().BoolVar(&cfg.verbose, "verbose", false, "enable development-mode (human-readable) logging")

	return cmd
}

func runBenchmark(cfg *runConfig) error {
	logger := newLogger(cfg.verbose)
	defer logger.Sync()

	values := pool.NewBuilder[pool.Bytes](pool.NewBytes(cfg.payload)).
		WithCapacity(cfg.capacity).
		WithGrowth(pool.GrowDouble())

	var p interface {
		Size() int
		Used() int
		Remaining() int
		Checkout() pool.Owned[pool.Bytes, *pool.Bytes]
	}
	if cfg.growable {
		p = values.Growable()
	} else {
		p = values.Fixed()
	}

	gauges := newPoolGauges()
	gauges.watch(p)

	var stopMetrics func()
	if cfg.metricsAddr != "" {
		stopMetrics = serveMetrics(cfg.metricsAddr, logger)
		defer stopMetrics()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.duration)
	defer cancel()

	var checkouts int64
	var wg sync.WaitGroup
	payload := make([]byte, cfg.payload/4)

	for i := 0; i < cfg.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				owned := p.Checkout()
				owned.Value().Append(payload)
				owned.Release()
				atomic.AddInt64(&checkouts, 1)
			}
		}()
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

snapshotLoop:
	for {
		select {
		case <-done:
			break snapshotLoop
		case <-ticker.C:
			gauges.refresh(p)
			logger.Info("pool snapshot",
				zap.Int("size", p.Size()),
				zap.Int("used", p.Used()),
				zap.Int("remaining", p.Remaining()),
				zap.Int64("checkouts", atomic.LoadInt64(&checkouts)),
			)
		}
	}

	total := atomic.LoadInt64(&checkouts)
	elapsed := cfg.duration.Seconds()
	rate := float64(total) / elapsed

	fmt.Printf("workers=%d duration=%s checkouts=%s rate=%s/s final_size=%d\n",
		cfg.workers,
		cfg.duration,
		humanize.Comma(total),
		humanize.Comma(int64(rate)),
		p.Size(),
	)

	return nil
}

func serveMetrics(addr string, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server exited", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
