package host

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the "performance recorder (marks/measures)" bridge
// construction takes as an input (spec.md §6.1). It is backed by
// Prometheus client metrics so the bridge's host-thread latency and
// request-kind mix can be scraped like any other service in the stack.
type Recorder struct {
	marks    *prometheus.CounterVec
	measures *prometheus.HistogramVec
}

// NewRecorder registers and returns a Recorder. Pass a non-nil registerer
// (e.g. prometheus.NewRegistry()) to control where metrics land; a nil
// registerer registers against the default global registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		marks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tsbridge",
			Name:      "marks_total",
			Help:      "Count of named bridge events (e.g. analyzer_init, restart).",
		}, []string{"name"}),
		measures: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tsbridge",
			Name:      "request_duration_seconds",
			Help:      "Host-thread time spent inside one analyzer call, by request method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(r.marks, r.measures)
	return r
}

// Mark records that a named, durationless event occurred.
func (r *Recorder) Mark(name string) {
	r.marks.WithLabelValues(name).Inc()
}

// Measure records how long a request of the given method took.
func (r *Recorder) Measure(method string, start, end time.Time) {
	r.measures.WithLabelValues(method).Observe(end.Sub(start).Seconds())
}
