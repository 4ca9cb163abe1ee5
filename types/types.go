// Package types holds the values returned by an extraction.
package types

// VideoMeta is the metadata snapshot taken from one player response.
type VideoMeta struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	ChannelID        string `json:"channelId"`
	LengthSeconds    int    `json:"lengthSeconds"`
	ViewCount        int64  `json:"viewCount"`
	IsLive           bool   `json:"isLive"`
	ShortDescription string `json:"shortDescription"`
}

// Result describes one successful extraction.
type Result struct {
	Meta VideoMeta `json:"meta"`
	// URLs maps itag to a playable URL. Every key is present in the format catalog.
	URLs map[int]string `json:"urls"`
	// Itags lists the keys of URLs in the order the formats appeared on the page.
	Itags []int `json:"itags"`
	// HLSManifestURL is set for live streams that publish a master playlist.
	HLSManifestURL string `json:"hlsManifestUrl,omitempty"`
}

// URL returns the playable URL for itag, if any.
func (r *Result) URL(itag int) (string, bool) {
	if r == nil {
		return "", false
	}
	u, ok := r.URLs[itag]
	return u, ok
}

// Len returns the number of playable formats.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.URLs)
}
