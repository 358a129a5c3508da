package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Progress mutation names used as the "operation" label.
const (
	OpExerciseFeedback = "exercise_feedback"
	OpSessionNotes     = "session_notes"
	OpPerformedSets    = "performed_sets"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterProgressMutations  *prometheus.CounterVec
	CounterSkippedSets        prometheus.Counter
	CounterVersionConflicts   prometheus.Counter
	CounterPlansCreated       prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("coaching", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("coaching", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "route", "status"})
	counterProgressMutations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "progress_mutations",
		Help:      "Athlete progress mutations by operation and outcome",
	}, []string{"operation", "outcome"})
	counterSkippedSets := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "performed_sets_skipped",
		Help:      "Submitted performed sets whose id did not resolve",
	})
	counterVersionConflicts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_version_conflicts",
		Help:      "Plan writes rejected because the stored version moved on",
	})
	counterPlansCreated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_created",
		Help:      "The total number of created training plans",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterProgressMutations:  counterProgressMutations,
		CounterSkippedSets:        counterSkippedSets,
		CounterVersionConflicts:   counterVersionConflicts,
		CounterPlansCreated:       counterPlansCreated,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}

// ProgressMutation records the outcome ("ok" or an error kind) of one progress mutation.
func (m *Manager) ProgressMutation(operation, outcome string) {
	m.CounterProgressMutations.WithLabelValues(operation, outcome).Inc()
}
