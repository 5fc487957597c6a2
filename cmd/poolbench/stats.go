package main

import "github.com/prometheus/client_golang/prometheus"

// poolStats is anything exposing the three observability numbers every
// pool.Pool flavor provides; it lets the gauges wrap either a fixed or
// growable pool without caring which.
type poolStats interface {
	Size() int
	Used() int
	Remaining() int
}

type poolGauges struct {
	size      prometheus.Gauge
	used      prometheus.Gauge
	remaining prometheus.Gauge
}

func newPoolGauges() *poolGauges {
	g := &poolGauges{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poolbench_pool_size",
			Help: "Total capacity of the pool under benchmark.",
		}),
		used: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poolbench_pool_used",
			Help: "Number of currently checked-out slots.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poolbench_pool_remaining",
			Help: "Size minus Used.",
		}),
	}
	prometheus.MustRegister(g.size, g.used, g.remaining)
	return g
}

// watch takes an initial snapshot so the gauges read sensibly even before
// the first scheduled refresh.
func (g *poolGauges) watch(p poolStats) {
	g.refresh(p)
}

func (g *poolGauges) refresh(p poolStats) {
	g.size.Set(float64(p.Size()))
	g.used.Set(float64(p.Used()))
	g.remaining.Set(float64(p.Remaining()))
}
