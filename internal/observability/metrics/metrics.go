package metrics

import "github.com/prometheus/client_golang/prometheus"

// AgentMetrics exposes counters/histograms for the conversation loop.
type AgentMetrics struct {
	turnsTotal     *prometheus.CounterVec
	toolCallsTotal *prometheus.CounterVec
	modelLatency   *prometheus.HistogramVec
}

func NewAgentMetrics(reg prometheus.Registerer) *AgentMetrics {
	m := &AgentMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "agent",
			Name:      "turns_total",
			Help:      "Total conversation turns processed",
		}, []string{"status"}),
		toolCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "agent",
			Name:      "tool_calls_total",
			Help:      "Total tool executions requested by the model",
		}, []string{"tool", "status"}),
		modelLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "agent",
			Name:      "model_latency_seconds",
			Help:      "Latency of language model rounds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"round"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.toolCallsTotal, m.modelLatency)
	return m
}

func (m *AgentMetrics) ObserveTurn(status string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(status).Inc()
}

func (m *AgentMetrics) ObserveToolCall(tool, status string) {
	if m == nil {
		return
	}
	m.toolCallsTotal.WithLabelValues(tool, status).Inc()
}

func (m *AgentMetrics) ObserveModelLatency(round string, seconds float64) {
	if m == nil {
		return
	}
	m.modelLatency.WithLabelValues(round).Observe(seconds)
}
