// Package sanitize derives file names that are safe on every common file system.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameRunes caps the base name, extension excluded.
	MaxNameRunes = 120
	// DefaultName replaces a title and id that are both empty.
	DefaultName = "video"
)

var (
	unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]+`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// StreamFilename builds "<title>.<ext>" for a stream. The video id stands in
// for a title that sanitizes to nothing. ext is used without a leading dot;
// empty ext yields a bare name.
func StreamFilename(title, videoID, ext string) string {
	name := clean(title)
	if name == "" {
		name = clean(videoID)
	}
	if name == "" {
		name = DefaultName
	}
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
	s = unsafeChars.ReplaceAllString(s, "_")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = truncateRunes(strings.TrimSpace(s), MaxNameRunes)
	// Windows rejects names ending in a dot or space.
	return strings.TrimRight(s, ". ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
