package keeper

import (
	"context"
	"math/big"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// PoolMetrics holds all Prometheus metrics for the pool module
type PoolMetrics struct {
	// Operation metrics
	OperationsTotal  *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec

	// Swap metrics
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec
	SpotPrice        *prometheus.GaugeVec
}

var (
	poolMetricsOnce sync.Once
	poolMetrics     *PoolMetrics
)

// NewPoolMetrics creates and registers pool metrics (singleton pattern)
func NewPoolMetrics() *PoolMetrics {
	poolMetricsOnce.Do(func() {
		poolMetrics = &PoolMetrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "operations_total",
					Help:      "Total number of pool operations by outcome",
				},
				[]string{"operation", "status"},
			),
			OperationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "operation_latency_seconds",
					Help:      "Pool operation latency in seconds, lock wait included",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"denom", "direction"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to the pool",
				},
				[]string{"denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from the pool",
				},
				[]string{"denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "reserves",
					Help:      "Current pool reserves",
				},
				[]string{"denom"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "share_supply",
					Help:      "Outstanding liquidity shares",
				},
				[]string{"denom"},
			),
			SpotPrice: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cpamm",
					Subsystem: "pool",
					Name:      "spot_price",
					Help:      "Units of the second asset per unit of the first",
				},
				[]string{"pair"},
			),
		}
	})
	return poolMetrics
}

func (m *PoolMetrics) recordOperation(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *PoolMetrics) setPoolState(pair types.AssetPair, shareDenom string, reserves types.Reserves, supply math.Int) {
	m.PoolReserves.WithLabelValues(pair.DenomA).Set(toFloat(reserves.ReserveA))
	m.PoolReserves.WithLabelValues(pair.DenomB).Set(toFloat(reserves.ReserveB))
	m.ShareSupply.WithLabelValues(shareDenom).Set(toFloat(supply))
	if reserves.ReserveA.IsPositive() {
		m.SpotPrice.WithLabelValues(pair.String()).Set(toFloat(reserves.ReserveB) / toFloat(reserves.ReserveA))
	}
}

// RefreshMetrics publishes the reserves and share supply read from ctx. Call it
// with a context over committed state only; an enclosing branch may still be
// discarded after a pool operation returns.
func (k Keeper) RefreshMetrics(ctx context.Context) {
	reserves, err := k.GetStoredReserves(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to read reserves for metrics", "error", err)
		return
	}
	k.metrics.setPoolState(k.pair, k.shares.Denom(), reserves, k.shares.TotalSupply(ctx))
}

// toFloat converts an amount for metric export; precision loss is acceptable there.
func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
