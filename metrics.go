package ytextract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ytget/ytextract/errs"
)

const metricsNamespace = "ytextract"

// metrics are owned by one Extractor. They register with Config.Registerer,
// or with a private registry when none is given. The syntheses and cache hit
// counters read the current provider and restart from zero whenever a With*
// setter rebuilds it.
type metrics struct {
	registry prometheus.Gatherer

	extractions *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	signatures  prometheus.Counter
	dropped     prometheus.Counter
	profiles    *prometheus.CounterVec
	extractTime prometheus.Histogram
	syntheses   prometheus.CounterFunc
	cacheHits   prometheus.CounterFunc
}

func newMetrics(reg prometheus.Registerer, syntheses, cacheHits func() float64) *metrics {
	var gatherer prometheus.Gatherer
	if reg == nil {
		r := prometheus.NewRegistry()
		reg, gatherer = r, r
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	f := promauto.With(reg)

	m := &metrics{
		registry: gatherer,
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "extractions_total",
			Help:      "Extractions by result code (ok or an error code).",
		}, []string{"result"}),
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "evaluations_total",
			Help:      "Script evaluations by outcome.",
		}, []string{"outcome"}),
		signatures: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "signatures_resolved_total",
			Help:      "Encrypted signatures applied to stream URLs.",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "signatures_dropped_total",
			Help:      "Pending candidates dropped because the evaluator returned fewer lines.",
		}),
		profiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "profile_lookups_total",
			Help:      "Decipher profile lookups by source (memory, cache, synthesized).",
		}, []string{"source"}),
		extractTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "extract_duration_seconds",
			Help:      "Wall time of Extract calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.syntheses = f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "syntheses_total",
		Help:      "Player script fetches followed by decipher function synthesis.",
	}, syntheses)
	m.cacheHits = f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hits_total",
		Help:      "Decipher profiles loaded from the file cache.",
	}, cacheHits)
	return m
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errs.CodeOf(err); code != "" {
		return code
	}
	return "unknown"
}

func evaluationLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}
