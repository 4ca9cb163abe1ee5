package cipher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/ytextract/internal/logger"
)

const (
	// CacheFileName is the name of the profile file inside the cache directory.
	CacheFileName = "decipher_js_funct"
	// DefaultCacheTTL is how long a persisted profile stays fresh.
	DefaultCacheTTL = 14 * 24 * time.Hour

	cacheSubdir = "ytextract"
)

// DefaultCacheDir returns the per-user cache directory, or a directory under
// os.TempDir when the platform has none.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, cacheSubdir)
	}
	return filepath.Join(os.TempDir(), cacheSubdir)
}

// FileCache persists one Profile as three lines: asset name, function name
// and script. Every failure is a miss or a no-op.
type FileCache struct {
	Dir string
	TTL time.Duration
	// Now is the clock used for freshness checks; nil means time.Now.
	Now func() time.Time
}

// NewFileCache returns a cache in dir with the given ttl. Empty dir and
// non-positive ttl select the defaults.
func NewFileCache(dir string, ttl time.Duration) *FileCache {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &FileCache{Dir: dir, TTL: ttl}
}

// Path returns the cache file location.
func (c *FileCache) Path() string {
	return filepath.Join(c.Dir, CacheFileName)
}

func (c *FileCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *FileCache) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultCacheTTL
	}
	return c.TTL
}

// Fresh reports whether a file last modified at mod is still usable.
func (c *FileCache) Fresh(mod time.Time) bool {
	return c.now().Sub(mod) < c.ttl()
}

// Load returns the persisted profile if it exists, is fresh and well formed.
func (c *FileCache) Load() (*Profile, bool) {
	log := logger.WithComponent(logger.ComponentCache)
	path := c.Path()

	info, err := os.Stat(path)
	if err != nil {
		log.Debug("cache miss", map[string]interface{}{"path": path, "reason": err.Error()})
		return nil, false
	}
	if !c.Fresh(info.ModTime()) {
		log.Debug("cache stale", map[string]interface{}{"path": path, "modified": info.ModTime().Format(time.RFC3339)})
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("cache read failed", map[string]interface{}{"path": path, "error": err.Error()})
		return nil, false
	}
	lines := strings.SplitN(string(data), "\n", 3)
	if len(lines) != 3 {
		log.Debug("cache malformed", map[string]interface{}{"path": path, "lines": len(lines)})
		return nil, false
	}
	p := &Profile{
		AssetName:    strings.TrimSpace(lines[0]),
		FunctionName: strings.TrimSpace(lines[1]),
		Script:       strings.TrimRight(lines[2], "\r\n"),
	}
	if !p.Valid() {
		log.Debug("cache malformed", map[string]interface{}{"path": path})
		return nil, false
	}
	return p, true
}

// Save writes p atomically. Invalid profiles are ignored.
func (c *FileCache) Save(p *Profile) {
	log := logger.WithComponent(logger.ComponentCache)
	if !p.Valid() {
		return
	}
	if err := c.write(p); err != nil {
		log.Debug("cache write failed", map[string]interface{}{"path": c.Path(), "error": err.Error()})
		return
	}
	log.Debug("cache written", map[string]interface{}{"path": c.Path(), "asset": p.AssetName})
}

// encode renders p in the three-line file format.
func encode(p *Profile) []byte {
	script := strings.NewReplacer("\r", " ", "\n", " ").Replace(p.Script)
	return []byte(p.AssetName + "\n" + p.FunctionName + "\n" + script + "\n")
}
