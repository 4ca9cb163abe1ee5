// Package formats holds the static itag catalog and helpers for choosing
// among the formats of an extraction result.
package formats

import "sort"

// VideoCodec names the video codec of a format.
type VideoCodec string

// AudioCodec names the audio codec of a format.
type AudioCodec string

const (
	NoVideo VideoCodec = ""
	MPEG4   VideoCodec = "mpeg4"
	H263    VideoCodec = "h263"
	H264    VideoCodec = "h264"
	VP8     VideoCodec = "vp8"
	VP9     VideoCodec = "vp9"
)

const (
	NoAudio AudioCodec = ""
	MP3     AudioCodec = "mp3"
	AAC     AudioCodec = "aac"
	Vorbis  AudioCodec = "vorbis"
	Opus    AudioCodec = "opus"
)

// Descriptor describes the container and codecs behind an itag.
type Descriptor struct {
	Itag       int        `json:"itag"`
	Ext        string     `json:"ext"`
	Height     int        `json:"height,omitempty"`
	FPS        int        `json:"fps"`
	VideoCodec VideoCodec `json:"vcodec,omitempty"`
	AudioCodec AudioCodec `json:"acodec,omitempty"`
	// AudioBitrate is in kbit/s; 0 when unknown or without audio.
	AudioBitrate int  `json:"abr,omitempty"`
	DASH         bool `json:"dash"`
	HLSLive      bool `json:"hlsLive"`
}

// HasVideo reports whether the format carries a video track.
func (d Descriptor) HasVideo() bool { return d.VideoCodec != NoVideo }

// HasAudio reports whether the format carries an audio track.
func (d Descriptor) HasAudio() bool { return d.AudioCodec != NoAudio }

// Progressive reports whether audio and video are muxed in one stream.
func (d Descriptor) Progressive() bool {
	return d.HasVideo() && d.HasAudio() && !d.DASH && !d.HLSLive
}

func progressive(itag int, ext string, height int, v VideoCodec, a AudioCodec, abr int) Descriptor {
	return Descriptor{Itag: itag, Ext: ext, Height: height, FPS: 30, VideoCodec: v, AudioCodec: a, AudioBitrate: abr}
}

func dashVideo(itag int, ext string, height int, v VideoCodec, fps int) Descriptor {
	return Descriptor{Itag: itag, Ext: ext, Height: height, FPS: fps, VideoCodec: v, DASH: true}
}

func dashAudio(itag int, ext string, a AudioCodec, abr int) Descriptor {
	return Descriptor{Itag: itag, Ext: ext, FPS: 30, AudioCodec: a, AudioBitrate: abr, DASH: true}
}

func hlsLive(itag int, height int, abr int) Descriptor {
	return Descriptor{Itag: itag, Ext: "mp4", Height: height, FPS: 30, VideoCodec: H264, AudioCodec: AAC, AudioBitrate: abr, HLSLive: true}
}

var catalog = func() map[int]Descriptor {
	list := []Descriptor{
		// progressive
		progressive(17, "3gp", 144, MPEG4, AAC, 24),
		progressive(36, "3gp", 240, MPEG4, AAC, 32),
		progressive(5, "flv", 240, H263, MP3, 64),
		progressive(43, "webm", 360, VP8, Vorbis, 128),
		progressive(18, "mp4", 360, H264, AAC, 96),
		progressive(22, "mp4", 720, H264, AAC, 192),

		// dash mp4 video
		dashVideo(160, "mp4", 144, H264, 30),
		dashVideo(133, "mp4", 240, H264, 30),
		dashVideo(134, "mp4", 360, H264, 30),
		dashVideo(135, "mp4", 480, H264, 30),
		dashVideo(136, "mp4", 720, H264, 30),
		dashVideo(137, "mp4", 1080, H264, 30),
		dashVideo(264, "mp4", 1440, H264, 30),
		dashVideo(266, "mp4", 2160, H264, 30),
		dashVideo(298, "mp4", 720, H264, 60),
		dashVideo(299, "mp4", 1080, H264, 60),

		// dash m4a audio
		dashAudio(140, "m4a", AAC, 128),
		dashAudio(141, "m4a", AAC, 256),
		dashAudio(256, "m4a", AAC, 192),
		dashAudio(258, "m4a", AAC, 384),

		// dash webm video
		dashVideo(278, "webm", 144, VP9, 30),
		dashVideo(242, "webm", 240, VP9, 30),
		dashVideo(243, "webm", 360, VP9, 30),
		dashVideo(244, "webm", 480, VP9, 30),
		dashVideo(247, "webm", 720, VP9, 30),
		dashVideo(248, "webm", 1080, VP9, 30),
		dashVideo(271, "webm", 1440, VP9, 30),
		dashVideo(313, "webm", 2160, VP9, 30),
		dashVideo(302, "webm", 720, VP9, 60),
		dashVideo(308, "webm", 1440, VP9, 60),
		dashVideo(303, "webm", 1080, VP9, 60),
		dashVideo(315, "webm", 2160, VP9, 60),

		// dash webm audio
		dashAudio(171, "webm", Vorbis, 128),
		dashAudio(249, "webm", Opus, 48),
		dashAudio(250, "webm", Opus, 64),
		dashAudio(251, "webm", Opus, 160),

		// hls live
		hlsLive(91, 144, 48),
		hlsLive(92, 240, 48),
		hlsLive(93, 360, 128),
		hlsLive(94, 480, 128),
		hlsLive(95, 720, 256),
		hlsLive(96, 1080, 256),
	}
	m := make(map[int]Descriptor, len(list))
	for _, d := range list {
		m[d.Itag] = d
	}
	return m
}()

// Lookup returns the descriptor for itag. Unknown itags report false.
func Lookup(itag int) (Descriptor, bool) {
	d, ok := catalog[itag]
	return d, ok
}

// Known reports whether itag is in the catalog.
func Known(itag int) bool {
	_, ok := catalog[itag]
	return ok
}

// All returns every descriptor ordered by itag.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Itag < out[j].Itag })
	return out
}
