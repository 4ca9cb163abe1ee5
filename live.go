package ytextract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/internal/logger"
	"github.com/ytget/ytextract/youtube/formats"
)

var variantItagRe = regexp.MustCompile(`/itag/(\d+)/`)

// LiveVariant is one rendition of a live master playlist that maps to a
// catalog itag.
type LiveVariant struct {
	formats.Descriptor
	URL        string `json:"url"`
	MimeType   string `json:"mimeType"`
	Bandwidth  uint32 `json:"bandwidth"`
	Resolution string `json:"resolution,omitempty"`
	Codecs     string `json:"codecs,omitempty"`
}

// LiveVariants fetches the HLS master playlist at manifestURL (usually
// Result.HLSManifestURL) and returns its variants whose itag is in the
// catalog, in playlist order. Variant URIs are resolved against manifestURL.
func (e *Extractor) LiveVariants(manifestURL string) ([]LiveVariant, error) {
	log := logger.WithComponent(logger.ComponentFormat)
	if strings.TrimSpace(manifestURL) == "" {
		return nil, errs.New(errs.CodeInvalidInput, "empty manifest url")
	}
	base, err := url.Parse(manifestURL)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "parse manifest url", err)
	}

	body, err := e.pipe.Load().fetcher.Fetch(manifestURL, nil)
	if err != nil {
		return nil, err
	}
	playlist, listType, err := m3u8.DecodeFrom(strings.NewReader(body), true)
	if err != nil {
		return nil, errs.Wrap(errs.CodeMissingField, "decode master playlist", err)
	}
	if listType != m3u8.MASTER {
		return nil, errs.New(errs.CodeMissingField, "expected master playlist", "variants")
	}
	master := playlist.(*m3u8.MasterPlaylist)

	var out []LiveVariant
	for _, v := range master.Variants {
		if v == nil {
			continue
		}
		m := variantItagRe.FindStringSubmatch(v.URI)
		if m == nil {
			continue
		}
		itag, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		d, ok := formats.Lookup(itag)
		if !ok {
			log.Trace("variant itag not in catalog", map[string]interface{}{"itag": itag})
			continue
		}
		ref, err := url.Parse(v.URI)
		if err != nil {
			continue
		}
		out = append(out, LiveVariant{
			Descriptor: d,
			URL:        base.ResolveReference(ref).String(),
			MimeType:   d.MimeType(),
			Bandwidth:  v.Bandwidth,
			Resolution: v.Resolution,
			Codecs:     v.Codecs,
		})
	}
	log.Debug("live variants resolved", map[string]interface{}{"variants": len(master.Variants), "known": len(out)})
	return out, nil
}
