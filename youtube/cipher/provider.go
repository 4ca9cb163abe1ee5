package cipher

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ytget/ytextract/client"
	"github.com/ytget/ytextract/internal/logger"
)

// Source tells where a profile handed out by Provider came from.
type Source int

const (
	SourceMemory Source = iota
	SourceCache
	SourceSynthesized
)

func (s Source) String() string {
	switch s {
	case SourceMemory:
		return "memory"
	case SourceCache:
		return "cache"
	case SourceSynthesized:
		return "synthesized"
	}
	return "unknown"
}

// Provider hands out the profile for a player asset, reusing the in-memory
// profile, then the file cache, and synthesizing only when both miss.
// Concurrent callers needing the same asset share one synthesis.
type Provider struct {
	Fetcher client.Fetcher
	// BaseURL is prefixed to asset paths, e.g. "https://youtube.com".
	BaseURL string
	// Cache persists profiles; nil disables persistence.
	Cache *FileCache

	cell      Cell
	group     singleflight.Group
	syntheses atomic.Int64
	cacheHits atomic.Int64
}

// Current returns the profile in memory, or nil.
func (p *Provider) Current() *Profile { return p.cell.Load() }

// Syntheses returns how many times a script was fetched and synthesized.
func (p *Provider) Syntheses() int64 { return p.syntheses.Load() }

// CacheHits returns how many profiles were served from the file cache.
func (p *Provider) CacheHits() int64 { return p.cacheHits.Load() }

// Profile returns a profile built from asset.
func (p *Provider) Profile(asset string) (*Profile, Source, error) {
	if cur := p.cell.Load(); cur.Matches(asset) {
		return cur, SourceMemory, nil
	}
	if p.Cache != nil {
		if cached, ok := p.Cache.Load(); ok && cached.Matches(asset) {
			p.cell.Store(cached)
			p.cacheHits.Add(1)
			return cached, SourceCache, nil
		}
	}

	v, err, shared := p.group.Do(asset, func() (interface{}, error) {
		if cur := p.cell.Load(); cur.Matches(asset) {
			return cur, nil
		}
		return p.synthesize(asset)
	})
	if err != nil {
		return nil, SourceSynthesized, err
	}
	if shared {
		logger.WithComponent(logger.ComponentCipher).Trace("shared synthesis", map[string]interface{}{"asset": asset})
	}
	return v.(*Profile), SourceSynthesized, nil
}

func (p *Provider) synthesize(asset string) (*Profile, error) {
	log := logger.WithComponent(logger.ComponentCipher)
	p.syntheses.Add(1)

	js, err := p.Fetcher.Fetch(p.BaseURL+asset, nil)
	if err != nil {
		return nil, err
	}
	name, script, err := Synthesize(js)
	if err != nil {
		log.Debug("synthesis failed", map[string]interface{}{"asset": asset, "error": err.Error()})
		return nil, err
	}
	prof := &Profile{AssetName: asset, FunctionName: name, Script: script}
	p.cell.Store(prof)
	log.Debug("decipher function synthesized", map[string]interface{}{
		"asset":        asset,
		"name":         name,
		"script_bytes": len(script),
	})
	if p.Cache != nil {
		p.Cache.Save(prof)
	}
	return prof, nil
}
