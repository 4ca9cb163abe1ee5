package cipher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *Profile {
	return &Profile{AssetName: assetPath, FunctionName: "Ty", Script: `var Ty=function(a){return a};`}
}

func TestFileCache_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := NewFileCache(dir, 0)
	assert.Equal(t, DefaultCacheTTL, c.TTL)

	_, ok := c.Load()
	assert.False(t, ok, "empty cache should miss")

	c.Save(testProfile())
	got, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, testProfile(), got)

	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, assetPath+"\nTy\nvar Ty=function(a){return a};\n", string(data))
}

func TestFileCache_SaveFlattensNewlines(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	p := testProfile()
	p.Script = "var Ty=function(a){\nreturn a};"
	c.Save(p)

	got, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, "var Ty=function(a){ return a};", got.Script)
}

func TestFileCache_Freshness(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		age   time.Duration
		fresh bool
	}{
		{name: "new", age: 0, fresh: true},
		{name: "14d minus 1s", age: 14*24*time.Hour - time.Second, fresh: true},
		{name: "exactly 14d", age: 14 * 24 * time.Hour, fresh: false},
		{name: "14d plus 1s", age: 14*24*time.Hour + time.Second, fresh: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFileCache(t.TempDir(), 0)
			c.Now = func() time.Time { return base }
			c.Save(testProfile())

			mod := base.Add(-tt.age)
			require.NoError(t, os.Chtimes(c.Path(), mod, mod))

			assert.Equal(t, tt.fresh, c.Fresh(mod))
			_, ok := c.Load()
			assert.Equal(t, tt.fresh, ok)
		})
	}
}

func TestFileCache_Malformed(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"two lines":    assetPath + "\nTy",
		"blank script": assetPath + "\nTy\n\n",
		"blank name":   assetPath + "\n\nscript\n",
	} {
		t.Run(name, func(t *testing.T) {
			c := NewFileCache(t.TempDir(), 0)
			require.NoError(t, os.WriteFile(c.Path(), []byte(content), 0o600))
			_, ok := c.Load()
			assert.False(t, ok)
		})
	}
}

func TestFileCache_WriteFailureIsSilent(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	c := NewFileCache(filepath.Join(blocker, "cache"), 0)
	assert.NotPanics(t, func() { c.Save(testProfile()) })
	_, ok := c.Load()
	assert.False(t, ok)
}

func TestFileCache_IgnoresInvalidProfile(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	c.Save(&Profile{AssetName: assetPath})
	c.Save(nil)
	_, err := os.Stat(c.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultCacheDir(t *testing.T) {
	assert.Equal(t, cacheSubdir, filepath.Base(DefaultCacheDir()))
}
