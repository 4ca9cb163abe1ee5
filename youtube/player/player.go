// Package player parses the player response embedded in a watch page.
//
// The response is located by a fixed textual anchor and cut out with a
// quote-aware brace scan before being decoded with encoding/json. Formats of
// the on-the-fly stream type and itags missing from the catalog are skipped.
package player

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/internal/logger"
	"github.com/ytget/ytextract/internal/textscan"
	"github.com/ytget/ytextract/types"
	"github.com/ytget/ytextract/youtube/formats"
)

const (
	otfStreamType = "FORMAT_STREAM_TYPE_OTF"
	escapedAmp    = `\u0026`
)

var (
	responseAnchors = []string{
		"var ytInitialPlayerResponse",
		`window["ytInitialPlayerResponse"]`,
	}
	assignRe = regexp.MustCompile(`^\s*=\s*\{`)
)

// Response is the parsed subset of a player response.
type Response struct {
	Meta types.VideoMeta
	// Candidates holds one entry per itag, in page order: progressive
	// formats first, then adaptive ones.
	Candidates     []*Candidate
	HLSManifestURL string
}

// Pending returns the candidates waiting for a deciphered signature, in order.
func (r *Response) Pending() []*Candidate {
	var out []*Candidate
	for _, c := range r.Candidates {
		if c.Pending() {
			out = append(out, c)
		}
	}
	return out
}

type rawFormat struct {
	Itag            *int   `json:"itag"`
	URL             string `json:"url"`
	SignatureCipher string `json:"signatureCipher"`
	Cipher          string `json:"cipher"`
	Type            string `json:"type"`
}

type rawDetails struct {
	VideoID          *string `json:"videoId"`
	Title            *string `json:"title"`
	Author           *string `json:"author"`
	ChannelID        *string `json:"channelId"`
	LengthSeconds    *string `json:"lengthSeconds"`
	ViewCount        *string `json:"viewCount"`
	IsLiveContent    *bool   `json:"isLiveContent"`
	ShortDescription *string `json:"shortDescription"`
}

type rawResponse struct {
	StreamingData *struct {
		Formats         []rawFormat `json:"formats"`
		AdaptiveFormats []rawFormat `json:"adaptiveFormats"`
		HLSManifestURL  string      `json:"hlsManifestUrl"`
	} `json:"streamingData"`
	VideoDetails *rawDetails `json:"videoDetails"`
}

// ExtractBlob returns the raw JSON text of the embedded player response.
func ExtractBlob(page string) (string, error) {
	for _, anchor := range responseAnchors {
		from := 0
		for {
			i := strings.Index(page[from:], anchor)
			if i < 0 {
				break
			}
			rest := from + i + len(anchor)
			if loc := assignRe.FindStringIndex(page[rest:]); loc != nil {
				open := rest + loc[1] - 1
				if end := textscan.JSONObjectEnd(page, open); end > 0 {
					return page[open:end], nil
				}
			}
			from = rest
		}
	}
	return "", errs.ErrPlayerResponseNotFound
}

// Parse extracts the player response from page and classifies its formats.
func Parse(page string) (*Response, error) {
	blob, err := ExtractBlob(page)
	if err != nil {
		return nil, err
	}
	var raw rawResponse
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, errs.Wrap(errs.CodePlayerResponseNotFound, "decode player response", err)
	}
	if raw.StreamingData == nil {
		return nil, errs.MissingField("streamingData")
	}
	meta, err := parseMeta(raw.VideoDetails)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent(logger.ComponentPlayer)
	resp := &Response{Meta: meta, HLSManifestURL: raw.StreamingData.HLSManifestURL}
	seen := make(map[int]bool)
	all := make([]rawFormat, 0, len(raw.StreamingData.Formats)+len(raw.StreamingData.AdaptiveFormats))
	all = append(all, raw.StreamingData.Formats...)
	all = append(all, raw.StreamingData.AdaptiveFormats...)

	for _, f := range all {
		if f.Type == otfStreamType || f.Itag == nil {
			continue
		}
		itag := *f.Itag
		if !formats.Known(itag) {
			log.Trace("unknown itag dropped", map[string]interface{}{"itag": itag})
			continue
		}
		if seen[itag] {
			continue
		}
		c, ok := classify(itag, f)
		if !ok {
			log.Debug("format without usable url skipped", map[string]interface{}{"itag": itag})
			continue
		}
		seen[itag] = true
		resp.Candidates = append(resp.Candidates, c)
	}

	log.Debug("player response parsed", map[string]interface{}{
		"video_id":   meta.ID,
		"candidates": len(resp.Candidates),
		"pending":    len(resp.Pending()),
	})
	return resp, nil
}

// classify builds a candidate from a direct url or a signature cipher.
func classify(itag int, f rawFormat) (*Candidate, bool) {
	if f.URL != "" {
		return &Candidate{Itag: itag, URL: strings.ReplaceAll(f.URL, escapedAmp, "&")}, true
	}
	sc := f.SignatureCipher
	if sc == "" {
		sc = f.Cipher
	}
	if sc == "" {
		return nil, false
	}
	q := parseCipher(strings.ReplaceAll(sc, escapedAmp, "&"))
	u, s := q.Get("url"), q.Get("s")
	if u == "" || s == "" {
		return nil, false
	}
	sp := q.Get("sp")
	if sp == "" {
		sp = DefaultSignatureParam
	}
	return &Candidate{Itag: itag, URL: u, Signature: s, SignatureParam: sp}, true
}

// parseCipher decodes a signature cipher query. Unlike url.ParseQuery it
// keeps pairs holding a literal ';', and a pair that fails to unescape is
// skipped without dropping the rest.
func parseCipher(raw string) url.Values {
	q := make(url.Values)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		q.Add(key, val)
	}
	return q
}

func parseMeta(d *rawDetails) (types.VideoMeta, error) {
	if d == nil {
		return types.VideoMeta{}, errs.MissingField("videoDetails")
	}
	str := func(name string, v *string) (string, error) {
		if v == nil {
			return "", errs.MissingField("videoDetails." + name)
		}
		return *v, nil
	}
	num := func(name string, v *string) (int64, error) {
		if v == nil {
			return 0, errs.MissingField("videoDetails." + name)
		}
		n, err := strconv.ParseInt(*v, 10, 64)
		if err != nil {
			return 0, errs.MissingField("videoDetails." + name)
		}
		return n, nil
	}

	var (
		m   types.VideoMeta
		err error
	)
	if m.ID, err = str("videoId", d.VideoID); err != nil {
		return m, err
	}
	if m.Title, err = str("title", d.Title); err != nil {
		return m, err
	}
	if m.Author, err = str("author", d.Author); err != nil {
		return m, err
	}
	if m.ChannelID, err = str("channelId", d.ChannelID); err != nil {
		return m, err
	}
	length, err := num("lengthSeconds", d.LengthSeconds)
	if err != nil {
		return m, err
	}
	m.LengthSeconds = int(length)
	if m.ViewCount, err = num("viewCount", d.ViewCount); err != nil {
		return m, err
	}
	if d.IsLiveContent == nil {
		return m, errs.MissingField("videoDetails.isLiveContent")
	}
	m.IsLive = *d.IsLiveContent
	if m.ShortDescription, err = str("shortDescription", d.ShortDescription); err != nil {
		return m, err
	}
	return m, nil
}
