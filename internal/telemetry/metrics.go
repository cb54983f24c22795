// Package telemetry exports service use-case events to Prometheus and Rollbar.
package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexanderramin/taskforge/internal/service"
)

// Metrics counts use-case runs and records their latency. It owns its
// registry so several instances can coexist in tests.
type Metrics struct {
	registry  *prometheus.Registry
	useCases  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	generated *prometheus.CounterVec
	rowErrors *prometheus.CounterVec
}

var _ service.UseCaseObserver = (*Metrics)(nil)

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		useCases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Name:      "use_cases_total",
				Help:      "Total number of service use cases by name and outcome",
			},
			[]string{"use_case", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskforge",
				Name:      "use_case_duration_ms",
				Help:      "Latency of service use cases in milliseconds",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
			},
			[]string{"use_case"},
		),
		generated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Name:      "generated_entities_total",
				Help:      "Projects and tasks created from templates",
			},
			[]string{"kind"},
		),
		rowErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskforge",
				Name:      "import_row_failures_total",
				Help:      "Rows rejected by CSV imports",
			},
			[]string{"use_case"},
		),
	}
}

func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome = "failure"
	}
	m.useCases.WithLabelValues(event.Name, outcome).Inc()
	m.latency.WithLabelValues(event.Name).Observe(float64(event.Duration.Microseconds()) / 1000)

	if !event.Success {
		return
	}
	if event.Name == "generate-from-template" {
		m.generated.WithLabelValues("project").Add(fieldFloat(event.Fields, "project_count"))
		m.generated.WithLabelValues("task").Add(fieldFloat(event.Fields, "task_count"))
	}
	if failed := fieldFloat(event.Fields, "failed"); failed > 0 {
		m.rowErrors.WithLabelValues(event.Name).Add(failed)
	}
}

// Gatherer exposes the registry for exporters.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile dumps the current metrics in the node_exporter textfile format.
// A CLI process is too short-lived to be scraped, so it flushes on exit instead.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func fieldFloat(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}
