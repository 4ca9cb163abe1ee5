package ytextract

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ytget/ytextract/client"
	"github.com/ytget/ytextract/youtube/cipher"
)

// DefaultBaseURL is the site root watch pages and player assets are fetched from.
const DefaultBaseURL = "https://youtube.com"

// Environment variables read by ConfigFromEnv.
const (
	EnvCacheDir    = "YTEXTRACT_CACHE_DIR"
	EnvCacheTTL    = "YTEXTRACT_CACHE_TTL"
	EnvEvalTimeout = "YTEXTRACT_EVAL_TIMEOUT"
	EnvUserAgent   = "YTEXTRACT_USER_AGENT"
)

// Config configures an Extractor. Zero values select the defaults.
type Config struct {
	// HTTPTimeout bounds every fetch; defaults to client.DefaultTimeout.
	HTTPTimeout time.Duration
	UserAgent   string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// CacheDir defaults to cipher.DefaultCacheDir().
	CacheDir     string
	CacheTTL     time.Duration
	DisableCache bool

	// EvalTimeout bounds the wait for the evaluator; defaults to cipher.DefaultEvalTimeout.
	EvalTimeout time.Duration
	// Evaluator runs decipher scripts; nil selects the goja engine.
	Evaluator cipher.Evaluator

	// Fetcher replaces the HTTP client built from HTTPTimeout and UserAgent.
	Fetcher client.Fetcher
	// Registerer receives the extractor's metrics; nil means a private registry.
	// Registering a second extractor with the same Registerer panics.
	Registerer prometheus.Registerer
}

// ConfigFromEnv returns a Config populated from the YTEXTRACT_* variables.
// Unparseable durations are ignored.
func ConfigFromEnv() Config {
	var cfg Config
	cfg.CacheDir = strings.TrimSpace(os.Getenv(EnvCacheDir))
	cfg.UserAgent = strings.TrimSpace(os.Getenv(EnvUserAgent))
	if d, ok := envDuration(EnvCacheTTL); ok {
		cfg.CacheTTL = d
	}
	if d, ok := envDuration(EnvEvalTimeout); ok {
		cfg.EvalTimeout = d
	}
	return cfg
}

// envDuration accepts Go durations ("90s") and bare seconds ("90").
func envDuration(key string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d, true
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c Config) evalTimeout() time.Duration {
	if c.EvalTimeout <= 0 {
		return cipher.DefaultEvalTimeout
	}
	return c.EvalTimeout
}
