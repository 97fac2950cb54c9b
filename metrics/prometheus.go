package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snakeoracle"

// PrometheusCollector exports build progress as Prometheus gauges, labelled
// by configuration length where it applies.
type PrometheusCollector struct {
	area        prometheus.Gauge
	terminals   *prometheus.GaugeVec
	discovered  *prometheus.GaugeVec
	resolved    *prometheus.GaugeVec
	trieNodes   prometheus.Gauge
	layerTime   *prometheus.GaugeVec
	layersTotal prometheus.Counter
	startTime   time.Time
}

// NewPrometheusCollector creates the gauges and registers them with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	p := &PrometheusCollector{
		area: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_area",
			Help:      "Number of vertices of the solved graph.",
		}),
		terminals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "terminal_configurations",
			Help:      "Full-length safe-winning configurations by class.",
		}, []string{"class"}),
		discovered: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layer_discovered_configurations",
			Help:      "Configurations discovered by reverse moves, by length.",
		}, []string{"length"}),
		resolved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layer_resolved_configurations",
			Help:      "Configurations with a move for every target, by length.",
		}, []string{"length"}),
		trieNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trie_nodes",
			Help:      "Live configuration trie nodes after the latest layer.",
		}),
		layerTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layer_seconds",
			Help:      "Seconds spent on a layer, by length and phase.",
		}, []string{"length", "phase"}),
		layersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layers_total",
			Help:      "Layers completed by the backward build.",
		}),
	}
	reg.MustRegister(p.area, p.terminals, p.discovered, p.resolved, p.trieNodes, p.layerTime, p.layersTotal)
	return p
}

func (p *PrometheusCollector) Start(area int) {
	p.startTime = time.Now()
	p.area.Set(float64(area))
}

func (p *PrometheusCollector) SetGrowth(fullSnakes, cycles, thetas int) {
	p.terminals.WithLabelValues("hamiltonian-cycle").Set(float64(cycles))
	p.terminals.WithLabelValues("theta").Set(float64(thetas))
	p.terminals.WithLabelValues("unclassified").Set(float64(fullSnakes - cycles - thetas))
}

func (p *PrometheusCollector) AddLayer(layer LayerMetric) {
	length := strconv.Itoa(layer.Length)
	p.discovered.WithLabelValues(length).Set(float64(layer.Discovered))
	p.resolved.WithLabelValues(length).Set(float64(layer.Resolved))
	p.trieNodes.Set(float64(layer.TrieNodes))
	p.layerTime.WithLabelValues(length, "expand").Set(layer.ExpandTime.Seconds())
	p.layerTime.WithLabelValues(length, "score").Set(layer.ScoreTime.Seconds())
	p.layersTotal.Inc()
}

// Complete only reports the elapsed time; the gauges hold everything else.
func (p *PrometheusCollector) Complete() BuildMetric {
	return BuildMetric{StartTime: p.startTime, Duration: time.Since(p.startTime)}
}
