package ytextract

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ytget/ytextract/client"
	"github.com/ytget/ytextract/internal/jsengine"
	"github.com/ytget/ytextract/internal/logger"
	"github.com/ytget/ytextract/types"
	"github.com/ytget/ytextract/youtube/cipher"
	"github.com/ytget/ytextract/youtube/player"
	"github.com/ytget/ytextract/youtube/videoid"
)

// Extractor resolves watch pages into playable stream URLs. It is safe for
// concurrent use; the With* setters swap the whole pipeline atomically, so
// calls already running finish with the settings they started with.
type Extractor struct {
	mu      sync.Mutex
	cfg     Config
	pipe    atomic.Pointer[pipeline]
	metrics *metrics
}

// pipeline is the set of collaborators built from one Config.
type pipeline struct {
	baseURL  string
	fetcher  client.Fetcher
	provider *cipher.Provider
	bridge   *cipher.Bridge
}

// New returns an Extractor with default settings.
func New() *Extractor {
	return NewWith(Config{})
}

// NewWith returns an Extractor configured by cfg.
func NewWith(cfg Config) *Extractor {
	e := &Extractor{cfg: cfg}
	e.pipe.Store(buildPipeline(cfg))
	e.metrics = newMetrics(cfg.Registerer,
		func() float64 { return float64(e.pipe.Load().provider.Syntheses()) },
		func() float64 { return float64(e.pipe.Load().provider.CacheHits()) },
	)
	return e
}

func buildPipeline(cfg Config) *pipeline {
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = client.NewWith(client.Config{Timeout: cfg.HTTPTimeout, UserAgent: cfg.UserAgent})
	}
	var cache *cipher.FileCache
	if !cfg.DisableCache {
		cache = cipher.NewFileCache(cfg.CacheDir, cfg.CacheTTL)
	}
	eval := cfg.Evaluator
	if eval == nil {
		// The default engine name never fails.
		eval, _ = jsengine.New(jsengine.EngineGoja, cfg.evalTimeout())
	}
	base := cfg.baseURL()
	return &pipeline{
		baseURL:  base,
		fetcher:  fetcher,
		provider: &cipher.Provider{Fetcher: fetcher, BaseURL: base, Cache: cache},
		bridge:   &cipher.Bridge{Evaluator: eval, Timeout: cfg.evalTimeout()},
	}
}

func (e *Extractor) update(f func(*Config)) *Extractor {
	e.mu.Lock()
	defer e.mu.Unlock()
	f(&e.cfg)
	e.pipe.Store(buildPipeline(e.cfg))
	return e
}

// Config returns a copy of the current configuration.
func (e *Extractor) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Gatherer returns the registry holding the extractor's metrics, or nil when
// they went to a Registerer that cannot be gathered.
func (e *Extractor) Gatherer() prometheus.Gatherer {
	return e.metrics.registry
}

// WithHTTPTimeout sets the timeout of each fetch.
func (e *Extractor) WithHTTPTimeout(d time.Duration) *Extractor {
	return e.update(func(c *Config) { c.HTTPTimeout = d })
}

// WithUserAgent sets the User-Agent sent with every fetch.
func (e *Extractor) WithUserAgent(ua string) *Extractor {
	return e.update(func(c *Config) { c.UserAgent = ua })
}

// WithBaseURL points page and asset fetches at another origin.
func (e *Extractor) WithBaseURL(base string) *Extractor {
	return e.update(func(c *Config) { c.BaseURL = base })
}

// WithFetcher replaces the HTTP client.
func (e *Extractor) WithFetcher(f client.Fetcher) *Extractor {
	return e.update(func(c *Config) { c.Fetcher = f })
}

// WithCache sets the decipher cache directory and freshness window and
// enables the cache.
func (e *Extractor) WithCache(dir string, ttl time.Duration) *Extractor {
	return e.update(func(c *Config) {
		c.CacheDir, c.CacheTTL, c.DisableCache = dir, ttl, false
	})
}

// WithoutCache disables the decipher cache file.
func (e *Extractor) WithoutCache() *Extractor {
	return e.update(func(c *Config) { c.DisableCache = true })
}

// WithEvaluator sets the script evaluator used for deciphering.
func (e *Extractor) WithEvaluator(ev cipher.Evaluator) *Extractor {
	return e.update(func(c *Config) { c.Evaluator = ev })
}

// WithEvalTimeout bounds the wait for the evaluator.
func (e *Extractor) WithEvalTimeout(d time.Duration) *Extractor {
	return e.update(func(c *Config) { c.EvalTimeout = d })
}

// Extract resolves identifier (a watch URL, a short link or a bare video id)
// into playable stream URLs keyed by itag.
//
// At most two fetches happen: the watch page, and the player script when an
// encrypted signature is present and no usable profile is in memory or cached.
func (e *Extractor) Extract(identifier string) (res *types.Result, err error) {
	start := time.Now()
	defer func() {
		e.metrics.extractions.WithLabelValues(resultLabel(err)).Inc()
		e.metrics.extractTime.Observe(time.Since(start).Seconds())
	}()
	log := logger.WithComponent(logger.ComponentApp)
	p := e.pipe.Load()

	id, err := videoid.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	page, err := p.fetcher.Fetch(id.WatchURL(p.baseURL), nil)
	if err != nil {
		return nil, err
	}
	resp, err := player.Parse(page)
	if err != nil {
		return nil, err
	}

	if pending := resp.Pending(); len(pending) > 0 {
		if err := e.decipher(p, page, pending); err != nil {
			return nil, err
		}
	}

	res, err = assemble(resp)
	if err != nil {
		log.Warn("no playable formats", map[string]interface{}{"video_id": id.String()})
		return nil, err
	}
	log.Info("extraction completed", map[string]interface{}{
		"video_id": id.String(),
		"formats":  res.Len(),
		"elapsed":  time.Since(start).String(),
	})
	return res, nil
}

// decipher resolves every pending signature with one evaluation.
func (e *Extractor) decipher(p *pipeline, page string, pending []*player.Candidate) error {
	log := logger.WithComponent(logger.ComponentCipher)

	asset, err := cipher.AssetPath(page)
	if err != nil {
		return err
	}
	prof, src, err := p.provider.Profile(asset)
	if err != nil {
		return err
	}
	e.metrics.profiles.WithLabelValues(src.String()).Inc()

	sigs := make([]string, len(pending))
	for i, c := range pending {
		sigs[i] = c.Signature
	}
	out, err := p.bridge.Evaluate(cipher.Invocation(prof, sigs))
	e.metrics.evaluations.WithLabelValues(evaluationLabel(err)).Inc()
	if err != nil {
		return err
	}

	lines := splitResults(out)
	applied := applySignatures(pending, lines)
	e.metrics.signatures.Add(float64(applied))
	if dropped := len(pending) - applied; dropped > 0 {
		e.metrics.dropped.Add(float64(dropped))
		log.Warn("evaluator returned fewer signatures than requested", map[string]interface{}{
			"requested": len(pending),
			"returned":  len(lines),
		})
	}
	log.Debug("signatures applied", map[string]interface{}{
		"asset":   asset,
		"source":  src.String(),
		"applied": applied,
	})
	return nil
}

