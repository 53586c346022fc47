package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// VaultMetrics holds all Prometheus metrics for the vault module
type VaultMetrics struct {
	// Ledger metrics
	DepositsTotal    *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec

	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Oracle metrics
	OracleReadings *prometheus.CounterVec

	// Security metrics
	ReentrancyBlocks prometheus.Counter
	Paused           prometheus.Gauge

	// State gauges
	AggregateLiability prometheus.Gauge
	NativePool         prometheus.Gauge
}

var (
	vaultMetricsOnce sync.Once
	vaultMetrics     *VaultMetrics
)

// NewVaultMetrics creates and registers vault metrics (singleton pattern)
func NewVaultMetrics() *VaultMetrics {
	vaultMetricsOnce.Do(func() {
		vaultMetrics = &VaultMetrics{
			DepositsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "deposits_total",
					Help:      "Total deposit attempts by asset and outcome",
				},
				[]string{"asset", "status"},
			),
			WithdrawalsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "withdrawals_total",
					Help:      "Total withdrawal attempts by asset and outcome",
				},
				[]string{"asset", "status"},
			),
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "swaps_total",
					Help:      "Total swap attempts by direction and outcome",
				},
				[]string{"direction", "status"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			OracleReadings: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "oracle_readings_total",
					Help:      "Oracle reads by feed and validation outcome",
				},
				[]string{"feed", "status"},
			),
			ReentrancyBlocks: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "reentrancy_blocks_total",
					Help:      "Guarded operations rejected by the operation lock",
				},
			),
			Paused: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "paused",
					Help:      "Pause flag (0=active, 1=paused)",
				},
			),
			AggregateLiability: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "aggregate_liability",
					Help:      "Tracked valuation of outstanding native balances",
				},
			),
			NativePool: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "goldbank",
					Subsystem: "vault",
					Name:      "native_pool",
					Help:      "Shared native pool balance in smallest units",
				},
			),
		}
	})
	return vaultMetrics
}

// GetVaultMetrics returns the singleton vault metrics instance
func GetVaultMetrics() *VaultMetrics {
	if vaultMetrics == nil {
		return NewVaultMetrics()
	}
	return vaultMetrics
}
