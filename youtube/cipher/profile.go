package cipher

import "sync/atomic"

// Profile is a synthesized decipher routine for one player asset.
// A Profile is never modified after construction.
type Profile struct {
	AssetName    string
	FunctionName string
	Script       string
}

// Valid reports whether every field is set.
func (p *Profile) Valid() bool {
	return p != nil && p.AssetName != "" && p.FunctionName != "" && p.Script != ""
}

// Matches reports whether p was built from asset.
func (p *Profile) Matches(asset string) bool {
	return p.Valid() && p.AssetName == asset
}

// Cell holds the current profile. The zero value is empty and ready to use.
type Cell struct {
	p atomic.Pointer[Profile]
}

// Load returns the current profile, or nil.
func (c *Cell) Load() *Profile {
	return c.p.Load()
}

// Store replaces the current profile as a whole.
func (c *Cell) Store(p *Profile) {
	c.p.Store(p)
}
