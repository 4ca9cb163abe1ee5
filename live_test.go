package ytextract

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/youtube/formats"
)

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=290288,CODECS="avc1.4d400c,mp4a.40.5",RESOLUTION=256x144,FRAME-RATE=30
/api/manifest/hls_playlist/expire/1700000000/itag/91/playlist/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1300000,CODECS="avc1.4d401e,mp4a.40.2",RESOLUTION=640x360,FRAME-RATE=30
https://cdn.example/api/manifest/hls_playlist/itag/93/playlist/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=9000000,CODECS="avc1.640028,mp4a.40.2",RESOLUTION=1920x1080,FRAME-RATE=60
/api/manifest/hls_playlist/itag/301/playlist/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=100000,CODECS="mp4a.40.5"
/api/manifest/hls_playlist/audio/index.m3u8
`

func playlistServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLiveVariants(t *testing.T) {
	srv := playlistServer(t, masterPlaylist)
	ex := NewWith(Config{DisableCache: true})

	got, err := ex.LiveVariants(srv.URL + "/api/manifest/hls_variant/master.m3u8")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 91, got[0].Itag)
	assert.Equal(t, srv.URL+"/api/manifest/hls_playlist/expire/1700000000/itag/91/playlist/index.m3u8", got[0].URL)
	assert.Equal(t, uint32(290288), got[0].Bandwidth)
	assert.Equal(t, "256x144", got[0].Resolution)
	assert.True(t, got[0].HLSLive)
	assert.Equal(t, formats.MimeVideoMP4, got[0].MimeType)

	assert.Equal(t, 93, got[1].Itag)
	assert.Equal(t, "https://cdn.example/api/manifest/hls_playlist/itag/93/playlist/index.m3u8", got[1].URL)
	want, _ := formats.Lookup(93)
	assert.Equal(t, want, got[1].Descriptor)
}

func TestLiveVariants_Errors(t *testing.T) {
	ex := NewWith(Config{DisableCache: true})

	_, err := ex.LiveVariants("  ")
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))

	media := playlistServer(t, "#EXTM3U\n#EXT-X-TARGETDURATION:5\n#EXTINF:5.0,\nseg0.ts\n")
	_, err = ex.LiveVariants(media.URL + "/index.m3u8")
	assert.True(t, errors.Is(err, errs.ErrMissingField))

	missing := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(missing.Close)
	_, err = ex.LiveVariants(missing.URL + "/master.m3u8")
	assert.True(t, errs.IsNetwork(err))
}
