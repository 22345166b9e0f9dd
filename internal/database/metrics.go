package database

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports pool statistics as prometheus gauges, read
// from the pool at scrape time.
type PoolCollector struct {
	db *Database

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
}

// NewPoolCollector returns a collector for db. Register it once per registry.
func NewPoolCollector(db *Database) *PoolCollector {
	return &PoolCollector{
		db: db,
		acquired: prometheus.NewDesc(
			"flashcards_db_pool_acquired_conns",
			"Connections currently leased to requests.",
			nil, nil,
		),
		idle: prometheus.NewDesc(
			"flashcards_db_pool_idle_conns",
			"Open connections waiting in the pool.",
			nil, nil,
		),
		total: prometheus.NewDesc(
			"flashcards_db_pool_total_conns",
			"Open connections, leased or idle.",
			nil, nil,
		),
		max: prometheus.NewDesc(
			"flashcards_db_pool_max_conns",
			"Configured upper bound on open connections.",
			nil, nil,
		),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
	c.db.acquireFailures.Describe(ch)
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.db.Stats()

	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(stat.MaxConns()))
	c.db.acquireFailures.Collect(ch)
}
