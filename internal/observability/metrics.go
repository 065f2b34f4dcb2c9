package observability

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	// 当前被观测的 key 数量来源
	keyspaceSource atomic.Pointer[func() int]

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "respkv",
			Name:      "commands_total",
			Help:      "Total commands executed.",
		},
		[]string{"command", "kind"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "respkv",
			Name:      "command_duration_seconds",
			Help:      "Time from decoded frame to encoded response.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"command"},
	)
	connectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "respkv",
			Name:      "connections_active",
			Help:      "Currently open client connections.",
		},
	)
	connectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "respkv",
			Name:      "connections_total",
			Help:      "Accepted client connections.",
		},
	)
	connectionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "respkv",
			Name:      "connection_errors_total",
			Help:      "Connections terminated by an error, by pipeline stage.",
		},
		[]string{"stage"},
	)
	keys = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "respkv",
			Name:      "keys",
			Help:      "Number of keys in storage.",
		},
		func() float64 {
			if fn := keyspaceSource.Load(); fn != nil {
				return float64((*fn)())
			}
			return 0
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commandsTotal, commandDuration, connectionsActive, connectionsTotal, connectionErrors, keys)
	})
}

// ObserveKeyspace 设置 respkv_keys 的数据来源
func ObserveKeyspace(size func() int) {
	RegisterMetrics()
	keyspaceSource.Store(&size)
}

func RecordCommand(command string, write bool, duration time.Duration) {
	RegisterMetrics()
	kind := "read"
	if write {
		kind = "write"
	}
	commandsTotal.WithLabelValues(command, kind).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func ConnectionOpened() {
	RegisterMetrics()
	connectionsTotal.Inc()
	connectionsActive.Inc()
}

func ConnectionClosed() {
	RegisterMetrics()
	connectionsActive.Dec()
}

func RecordConnectionError(stage string) {
	RegisterMetrics()
	connectionErrors.WithLabelValues(stage).Inc()
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
