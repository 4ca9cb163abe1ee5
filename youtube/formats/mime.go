package formats

const (
	MimeVideoMP4  = "video/mp4"
	MimeAudioMP4  = "audio/mp4"
	MimeVideoWebM = "video/webm"
	MimeAudioWebM = "audio/webm"
	MimeVideo3GPP = "video/3gpp"
	MimeVideoFLV  = "video/x-flv"
)

// MimeType returns the base MIME type of the format's container. Audio-only
// formats report the audio/* variant.
func (d Descriptor) MimeType() string {
	switch d.Ext {
	case "m4a":
		return MimeAudioMP4
	case "mp4":
		if !d.HasVideo() {
			return MimeAudioMP4
		}
		return MimeVideoMP4
	case "webm":
		if !d.HasVideo() {
			return MimeAudioWebM
		}
		return MimeVideoWebM
	case "3gp":
		return MimeVideo3GPP
	case "flv":
		return MimeVideoFLV
	case "":
		return MimeVideoMP4
	}
	if d.HasVideo() {
		return "video/" + d.Ext
	}
	return "audio/" + d.Ext
}
