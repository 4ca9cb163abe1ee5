//go:build !windows

package cipher

import (
	"os"

	"github.com/google/renameio/v2"
)

// write replaces the cache file atomically: temp file, fsync, rename.
func (c *FileCache) write(p *Profile) error {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return err
	}
	pending, err := renameio.NewPendingFile(c.Path(), renameio.WithPermissions(0o600))
	if err != nil {
		return err
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(encode(p)); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}
