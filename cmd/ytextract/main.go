package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ytget/ytextract"
	"github.com/ytget/ytextract/client"
	"github.com/ytget/ytextract/internal/jsengine"
	"github.com/ytget/ytextract/internal/logger"
	"github.com/ytget/ytextract/internal/sanitize"
	"github.com/ytget/ytextract/types"
	"github.com/ytget/ytextract/youtube/cipher"
	"github.com/ytget/ytextract/youtube/formats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ytextract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagFormat      string
		flagExt         string
		flagEngine      string
		flagCacheDir    string
		flagNoCache     bool
		flagEvalTimeout time.Duration
		flagTimeout     time.Duration
		flagUA          string
		flagProxy       string
		flagJSON        bool
		flagLive        bool
		flagVerbose     bool
		flagFilename    bool
	)

	fs.StringVar(&flagFormat, "format", "", "Format selector (e.g., 'itag=22', 'best', 'worst', 'audio', 'height<=480')")
	fs.StringVar(&flagExt, "ext", "", "Desired extension (e.g., 'mp4', 'webm')")
	fs.StringVar(&flagEngine, "engine", jsengine.EngineGoja, "Script engine for deciphering: goja or otto")
	fs.StringVar(&flagCacheDir, "cache-dir", "", "Decipher cache directory (default: user cache dir)")
	fs.BoolVar(&flagNoCache, "no-cache", false, "Do not read or write the decipher cache file")
	fs.DurationVar(&flagEvalTimeout, "eval-timeout", 0, "Decipher evaluation timeout (default 7s)")
	fs.DurationVar(&flagTimeout, "http-timeout", client.DefaultTimeout, "HTTP timeout (e.g., 30s, 1m)")
	fs.StringVar(&flagUA, "ua", "", "Override User-Agent header")
	fs.StringVar(&flagProxy, "proxy", "", "Proxy URL (http/https/socks5)")
	fs.BoolVar(&flagJSON, "json", false, "Print the full result as JSON")
	fs.BoolVar(&flagLive, "live", false, "Resolve HLS variants of a live stream")
	fs.BoolVar(&flagFilename, "print-filename", false, "Print a safe file name for the selected format instead of its URL")
	fs.BoolVar(&flagVerbose, "v", false, "Debug logging for all components")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ytextract [flags] <video_url_or_id>\n")
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}
	input := strings.TrimSpace(fs.Arg(0))

	setupLogging(flagVerbose, stderr)

	cfg := ytextract.ConfigFromEnv()
	if flagCacheDir != "" {
		cfg.CacheDir = flagCacheDir
	}
	if flagEvalTimeout > 0 {
		cfg.EvalTimeout = flagEvalTimeout
	}
	if flagUA != "" {
		cfg.UserAgent = flagUA
	}
	cfg.HTTPTimeout = flagTimeout
	cfg.DisableCache = flagNoCache

	evalCap := cfg.EvalTimeout
	if evalCap <= 0 {
		evalCap = cipher.DefaultEvalTimeout
	}
	ev, err := jsengine.New(flagEngine, evalCap)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	cfg.Evaluator = ev

	if flagProxy != "" {
		cfg.Fetcher = client.NewWith(client.Config{Timeout: cfg.HTTPTimeout, UserAgent: cfg.UserAgent, ProxyURL: flagProxy})
	}

	ex := ytextract.NewWith(cfg)
	res, err := ex.Extract(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if flagLive {
		if res.HLSManifestURL == "" {
			fmt.Fprintln(stderr, "Error: video has no HLS manifest")
			return 1
		}
		variants, err := ex.LiveVariants(res.HLSManifestURL)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if flagJSON {
			return writeJSON(stdout, stderr, variants)
		}
		for _, v := range variants {
			fmt.Fprintf(stdout, "%d\t%dp\t%s\n", v.Itag, v.Height, v.URL)
		}
		return 0
	}

	if flagJSON {
		return writeJSON(stdout, stderr, describe(res))
	}

	chosen := formats.Select(formats.Streams(res), flagFormat, flagExt)
	if chosen == nil {
		fmt.Fprintln(stderr, "Error: no format matches the selector")
		return 1
	}
	if flagFilename {
		fmt.Fprintln(stdout, sanitize.StreamFilename(res.Meta.Title, res.Meta.ID, chosen.Ext))
		return 0
	}
	fmt.Fprintln(stdout, chosen.URL)
	return 0
}

// setupLogging installs the environment logger config. Logs go to stderr
// unless YTEXTRACT_LOG_OUTPUT says otherwise, so stdout stays machine readable.
func setupLogging(verbose bool, stderr io.Writer) {
	cfg := logger.EnvironmentConfig()
	if os.Getenv(logger.EnvOutput) == "" {
		cfg.Output = stderr
	}
	if verbose {
		cfg.Level = logger.DEBUG
		for _, c := range []logger.Component{
			logger.ComponentApp, logger.ComponentClient, logger.ComponentPlayer, logger.ComponentFormat,
			logger.ComponentCipher, logger.ComponentCache, logger.ComponentBridge,
		} {
			cfg.Components[c] = true
		}
	}
	logger.SetGlobalLogger(logger.New(cfg))
}

// streamInfo is one playable format in the -json output.
type streamInfo struct {
	Itag     int    `json:"itag"`
	MimeType string `json:"mimeType"`
	Ext      string `json:"ext"`
	Height   int    `json:"height,omitempty"`
	FPS      int    `json:"fps,omitempty"`
	Audio    bool   `json:"audio"`
	URL      string `json:"url"`
}

type resultInfo struct {
	*types.Result
	Streams []streamInfo `json:"streams"`
}

// describe adds catalog details for every stream, in page order.
func describe(res *types.Result) resultInfo {
	out := resultInfo{Result: res, Streams: []streamInfo{}}
	for _, s := range formats.Streams(res) {
		out.Streams = append(out.Streams, streamInfo{
			Itag:     s.Itag,
			MimeType: s.MimeType(),
			Ext:      s.Ext,
			Height:   s.Height,
			FPS:      s.FPS,
			Audio:    s.HasAudio(),
			URL:      s.URL,
		})
	}
	return out
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
