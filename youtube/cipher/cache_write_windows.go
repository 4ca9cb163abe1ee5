//go:build windows

package cipher

import "os"

// write replaces the cache file through a temp file and rename.
func (c *FileCache) write(p *Profile) error {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return err
	}
	tmp := c.Path() + ".tmp"
	if err := os.WriteFile(tmp, encode(p), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.Path()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
