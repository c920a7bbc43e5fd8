// Package metrics instruments a mediarecord connection with Prometheus
// counters, histograms and gauges.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus metrics for a runtime connection.
type Metrics struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	txTotal      *prometheus.CounterVec
	height       prometheus.Gauge
	accountsOpen prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		callsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediarecord_calls_total",
				Help: "Total number of runtime calls",
			},
			[]string{"method", "status"},
		),
		callDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mediarecord_call_duration_seconds",
				Help:    "Runtime call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		txTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediarecord_tx_outcomes_total",
				Help: "Executed transactions by outcome code",
			},
			[]string{"code"},
		),
		height: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mediarecord_committed_height",
				Help: "Height of the last committed block",
			},
		),
		accountsOpen: f.NewCounter(
			prometheus.CounterOpts{
				Name: "mediarecord_accounts_opened_total",
				Help: "Accounts opened through OpenAccount",
			},
		),
	}
}

func (m *Metrics) observe(method string, start time.Time, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.callsTotal.WithLabelValues(method, status).Inc()
	m.callDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// Compile-time interface check.
var _ mediarecord.Connection = (*Connection)(nil)

// Connection records metrics for every call it forwards to the
// wrapped connection.
type Connection struct {
	next mediarecord.Connection
	m    *Metrics
}

// Instrument wraps next so that its calls are recorded in m.
func Instrument(next mediarecord.Connection, m *Metrics) *Connection {
	return &Connection{next: next, m: m}
}

func (c *Connection) Genesis(ctx context.Context, doc types.GenesisDoc) (types.GenesisResult, error) {
	start := time.Now()
	res, err := c.next.Genesis(ctx, doc)
	c.m.observe("Genesis", start, err)
	return res, err
}

func (c *Connection) ExecuteBlock(ctx context.Context, block types.Block) (types.BlockOutcome, error) {
	start := time.Now()
	outcome, err := c.next.ExecuteBlock(ctx, block)
	c.m.observe("ExecuteBlock", start, err)
	for _, tx := range outcome.TxOutcomes {
		c.m.txTotal.WithLabelValues(strconv.FormatUint(uint64(tx.Code), 10)).Inc()
	}
	return outcome, err
}

func (c *Connection) Commit(ctx context.Context) (types.CommitResult, error) {
	start := time.Now()
	res, err := c.next.Commit(ctx)
	c.m.observe("Commit", start, err)
	if err == nil {
		c.m.height.Set(float64(res.Height))
	}
	return res, err
}

func (c *Connection) Simulate(ctx context.Context, tx types.Transaction) (types.TxOutcome, error) {
	start := time.Now()
	out, err := c.next.Simulate(ctx, tx)
	c.m.observe("Simulate", start, err)
	return out, err
}

func (c *Connection) Account(ctx context.Context, key types.Pubkey) (types.AccountQueryResult, error) {
	start := time.Now()
	res, err := c.next.Account(ctx, key)
	c.m.observe("Account", start, err)
	return res, err
}

func (c *Connection) OpenAccount(ctx context.Context, req types.OpenAccountRequest) error {
	start := time.Now()
	err := c.next.OpenAccount(ctx, req)
	c.m.observe("OpenAccount", start, err)
	if err == nil {
		c.m.accountsOpen.Inc()
	}
	return err
}

func (c *Connection) Close() error { return c.next.Close() }
