// Package metrics records decode counters in a dedicated Prometheus registry.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/output"
)

// Checksum failure reasons used as the "reason" label.
const (
	ReasonMismatch  = output.ChecksumReasonMismatch
	ReasonMissing   = output.ChecksumReasonMissing
	ReasonMalformed = output.ChecksumReasonMalformed
)

var _ output.DecodeMetrics = (*Recorder)(nil)

// Recorder owns a registry and the counters fixinspect exports.
type Recorder struct {
	registry *prometheus.Registry

	decoded          prometheus.Counter
	decodeFailures   prometheus.Counter
	checksumFailures *prometheus.CounterVec
	unknownTags      prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fixinspect",
			Name:      "messages_decoded_total",
			Help:      "Messages decoded successfully.",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fixinspect",
			Name:      "decode_failures_total",
			Help:      "Messages that could not be decoded.",
		}),
		checksumFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fixinspect",
			Name:      "checksum_failures_total",
			Help:      "Decoded messages whose checksum did not validate.",
		}, []string{"reason"}),
		unknownTags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fixinspect",
			Name:      "unknown_tags_total",
			Help:      "Fields dropped because the dictionary does not define their tag.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fixinspect",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fixinspect",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	r.registry.MustRegister(
		r.decoded,
		r.decodeFailures,
		r.checksumFailures,
		r.unknownTags,
		r.httpRequests,
		r.httpDuration,
	)
	// Pre-create the reason series so they export as zero.
	for _, reason := range []string{ReasonMismatch, ReasonMissing, ReasonMalformed} {
		r.checksumFailures.WithLabelValues(reason)
	}
	return r
}

// Registry exposes the underlying registry for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordDecoded(unknownTags int) {
	r.decoded.Inc()
	if unknownTags > 0 {
		r.unknownTags.Add(float64(unknownTags))
	}
}

func (r *Recorder) RecordDecodeFailure() {
	r.decodeFailures.Inc()
}

func (r *Recorder) RecordChecksumFailure(reason string) {
	r.checksumFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusLabel := strconv.Itoa(status)
	r.httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	r.httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile renders the registry in text format and writes it atomically,
// for node_exporter's textfile collector after batch runs.
func (r *Recorder) WriteTextfile(fs afero.Fs, path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return writeFileAtomic(fs, path, buf.Bytes())
}
