// VulcanizeDB
// Copyright © 2024 Vulcanize

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package prom

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "eth_devnet_helpers"

	subsystemProvider = "provider"
	subsystemHTTP     = "http"
	subsystemWS       = "ws"
	subsystemIPC      = "ipc"
	subsystemNode     = "devnode"
)

var (
	metrics bool
	once    sync.Once

	providerCount    *prometheus.CounterVec
	providerErrors   *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec

	httpCount    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	wsCount      prometheus.Gauge
	ipcCount     prometheus.Gauge

	minedBlocks prometheus.Counter
	pendingTxs  prometheus.Gauge
)

// Init module initialization
func Init() {
	once.Do(func() {
		metrics = true

		providerCount = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProvider,
			Name:      "requests",
			Help:      "outbound json-rpc request count",
		}, []string{"method"})
		providerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProvider,
			Name:      "errors",
			Help:      "outbound json-rpc request error count",
		}, []string{"method"})
		providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemProvider,
			Name:      "duration",
			Help:      "outbound json-rpc request duration",
		}, []string{"method"})

		httpCount = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "count",
			Help:      "http request count",
		}, []string{"method"})
		httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemHTTP,
			Name:      "duration",
			Help:      "http request duration",
		}, []string{"method"})

		wsCount = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemWS,
			Name:      "count",
			Help:      "websocket connection count",
		})

		ipcCount = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemIPC,
			Name:      "count",
			Help:      "unix socket connection count",
		})

		minedBlocks = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemNode,
			Name:      "mined_blocks",
			Help:      "blocks sealed by the stub node",
		})
		pendingTxs = promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemNode,
			Name:      "pending_txs",
			Help:      "transactions waiting in the stub node",
		})
	})
}

// Enabled reports whether Init has been called.
func Enabled() bool {
	return metrics
}

// ObserveProviderCall records one outbound request.
func ObserveProviderCall(method string, duration time.Duration, err error) {
	if !metrics {
		return
	}
	providerCount.WithLabelValues(method).Inc()
	providerDuration.WithLabelValues(method).Observe(duration.Seconds())
	if err != nil {
		providerErrors.WithLabelValues(method).Inc()
	}
}

// BlocksMined adds n sealed blocks.
func BlocksMined(n int) {
	if metrics {
		minedBlocks.Add(float64(n))
	}
}

// SetPendingTxs sets the current pending transaction count.
func SetPendingTxs(n int) {
	if metrics {
		pendingTxs.Set(float64(n))
	}
}
