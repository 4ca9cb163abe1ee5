// Package videoid normalizes watch URLs, short links and bare ids into a
// canonical video id.
package videoid

import (
	"regexp"

	"github.com/ytget/ytextract/errs"
)

// ID is a resolved video identifier.
type ID string

var (
	watchURLRe = regexp.MustCompile(`(http|https)://(www\.|m\.|)youtube\.com/watch\?v=(.+?)( |\z|&|#)`)
	shortURLRe = regexp.MustCompile(`(http|https)://(www\.|)youtu\.be/(.+?)( |\z|&|\?|#)`)
	bareIDRe   = regexp.MustCompile(`^[[:graph:]]+$`)
)

// Resolve extracts the video id from input. Watch URLs are tried first, then
// short links, then a bare token without whitespace.
func Resolve(input string) (ID, error) {
	if m := watchURLRe.FindStringSubmatch(input); m != nil {
		return ID(m[3]), nil
	}
	if m := shortURLRe.FindStringSubmatch(input); m != nil {
		return ID(m[3]), nil
	}
	if bareIDRe.MatchString(input) {
		return ID(input), nil
	}
	return "", errs.New(errs.CodeInvalidInput, "unrecognized video identifier", input)
}

// WatchURL returns the canonical watch page address under base,
// e.g. "https://youtube.com".
func (id ID) WatchURL(base string) string {
	return base + "/watch?v=" + string(id)
}

func (id ID) String() string { return string(id) }
