package formats

import (
	"strconv"
	"strings"

	"github.com/ytget/ytextract/types"
)

// Stream pairs a catalog descriptor with its playable URL.
type Stream struct {
	Descriptor
	URL string `json:"url"`
}

// Streams lists the formats of res in page order.
func Streams(res *types.Result) []Stream {
	if res == nil {
		return nil
	}
	out := make([]Stream, 0, len(res.URLs))
	for _, itag := range res.Itags {
		u, ok := res.URLs[itag]
		if !ok {
			continue
		}
		d, ok := Lookup(itag)
		if !ok {
			continue
		}
		out = append(out, Stream{Descriptor: d, URL: u})
	}
	return out
}

// Select chooses a stream according to quality and ext.
// Supported selectors:
//   - itag=NN: specific format by itag (e.g., "itag=22" for 720p MP4)
//   - best: highest quality (height, then frame rate, then audio bitrate)
//   - worst: lowest quality
//   - audio: audio-only format with the highest bitrate
//   - height<=NNN: height no more than NNN (e.g., "height<=720")
//   - height>=NNN: height no less than NNN (e.g., "height>=480")
//
// ext filters by container ("mp4", "webm", "m4a"); a filter that matches
// nothing is ignored. Without a selector, progressive 720p MP4 (22) is
// preferred, then 360p MP4 (18), then any progressive stream, else the first.
// Select returns nil only when streams is empty.
func Select(streams []Stream, quality, ext string) *Stream {
	if len(streams) == 0 {
		return nil
	}

	filtered := make([]Stream, 0, len(streams))
	for i := range streams {
		if extEquals(streams[i], ext) {
			filtered = append(filtered, streams[i])
		}
	}
	if len(filtered) == 0 {
		filtered = append(filtered, streams...)
	}

	q := strings.TrimSpace(strings.ToLower(quality))
	if strings.HasPrefix(q, "itag=") {
		if it, err := strconv.Atoi(strings.TrimPrefix(q, "itag=")); err == nil {
			for i := range filtered {
				if itagEquals(filtered[i], it) {
					return &filtered[i]
				}
			}
		}
	}

	var minH, maxH int
	if strings.HasPrefix(q, "height<=") {
		if v, err := strconv.Atoi(strings.TrimPrefix(q, "height<=")); err == nil {
			maxH = v
		}
	}
	if strings.HasPrefix(q, "height>=") {
		if v, err := strconv.Atoi(strings.TrimPrefix(q, "height>=")); err == nil {
			minH = v
		}
	}
	if minH > 0 || maxH > 0 {
		tmp := make([]Stream, 0, len(filtered))
		for i := range filtered {
			if filtered[i].HasVideo() && withinHeight(filtered[i], minH, maxH) {
				tmp = append(tmp, filtered[i])
			}
		}
		if len(tmp) > 0 {
			filtered = tmp
		}
		return pick(filtered, true)
	}

	switch q {
	case "best":
		return pick(filtered, true)
	case "worst":
		return pick(filtered, false)
	case "audio":
		var best *Stream
		for i := range filtered {
			if filtered[i].HasVideo() || !filtered[i].HasAudio() {
				continue
			}
			if best == nil || filtered[i].AudioBitrate > best.AudioBitrate {
				best = &filtered[i]
			}
		}
		if best != nil {
			return best
		}
		return pick(filtered, true)
	}

	for _, preferred := range []int{22, 18} {
		for i := range filtered {
			if filtered[i].Itag == preferred {
				return &filtered[i]
			}
		}
	}
	for i := range filtered {
		if filtered[i].Progressive() {
			return &filtered[i]
		}
	}
	return &filtered[0]
}

// pick returns the best (or worst) stream by betterByQuality.
func pick(list []Stream, best bool) *Stream {
	idx := 0
	for i := 1; i < len(list); i++ {
		if best && betterByQuality(list[i], list[idx]) {
			idx = i
		}
		if !best && betterByQuality(list[idx], list[i]) {
			idx = i
		}
	}
	return &list[idx]
}
