package formats

import "strings"

// extEquals checks that the stream's container equals desiredExt.
// The desiredExt is case-insensitive and may start with a dot.
// If desiredExt is empty, the function returns true (no filtering).
func extEquals(s Stream, desiredExt string) bool {
	desired := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(desiredExt)), ".")
	if desired == "" {
		return true
	}
	return s.Ext == desired
}

// itagEquals checks that the stream's itag matches the specified itag value.
// Returns false if itag is 0 or negative.
func itagEquals(s Stream, itag int) bool {
	return itag > 0 && s.Itag == itag
}

// withinHeight checks whether the stream's height is within [minHeight, maxHeight].
// A bound of 0 is ignored; with both bounds 0 every stream passes.
func withinHeight(s Stream, minHeight int, maxHeight int) bool {
	if minHeight <= 0 && maxHeight <= 0 {
		return true
	}
	if minHeight > 0 && s.Height < minHeight {
		return false
	}
	if maxHeight > 0 && s.Height > maxHeight {
		return false
	}
	return true
}

// betterByQuality reports whether candidate ranks above current: height
// first, then frame rate, then audio bitrate.
func betterByQuality(candidate Stream, current Stream) bool {
	if candidate.Height != current.Height {
		return candidate.Height > current.Height
	}
	if candidate.FPS != current.FPS {
		return candidate.FPS > current.FPS
	}
	return candidate.AudioBitrate > current.AudioBitrate
}
