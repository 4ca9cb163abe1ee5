// Package client implements the page fetcher: a single blocking GET with
// fixed desktop headers that returns the decoded body as text.
package client

import (
	"compress/gzip"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/internal/logger"
)

const (
	// DefaultTimeout bounds one request including the body read.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the desktop browser identity sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/97.0.4692.98 Safari/537.36"

	acceptEncoding = "gzip, br"
)

// defaultTransport is a tuned HTTP transport reused across clients.
// Compression is negotiated explicitly so br can be requested as well as gzip.
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	ForceAttemptHTTP2:     true,
	DisableCompression:    true,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// Fetcher is the HTTP GET capability consumed by the extractor.
// Implementations return the full response body as text and report
// connection failures, non-2xx statuses and timeouts as errs.ErrNetwork.
type Fetcher interface {
	Fetch(rawURL string, header http.Header) (string, error)
}

// Config holds optional client parameters. Zero values use defaults.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	ProxyURL  string
	// HTTPClient replaces the tuned client entirely when set.
	HTTPClient *http.Client
}

// Client is the default Fetcher. It performs no retries.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
}

// New creates a Client with the tuned transport and default timeout.
func New() *Client {
	return NewWith(Config{})
}

// NewWith creates a new client with provided config. Zero values use defaults.
func NewWith(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	if cfg.HTTPClient != nil {
		return &Client{HTTPClient: cfg.HTTPClient, UserAgent: ua}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := defaultTransport.Clone()
	if cfg.ProxyURL != "" {
		if proxyFunc, err := proxyFromURLString(cfg.ProxyURL); err == nil {
			tr.Proxy = proxyFunc
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		UserAgent: ua,
	}
}

// Fetch performs one GET and returns the decoded body. Entries in header are
// added on top of the User-Agent and Accept-Encoding defaults.
func (c *Client) Fetch(rawURL string, header http.Header) (string, error) {
	log := logger.WithComponent(logger.ComponentClient)

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errs.Wrap(errs.CodeNetwork, "build request", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Debug("request failed", map[string]interface{}{"url": rawURL, "error": err.Error()})
		return "", errs.Wrap(errs.CodeNetwork, "get "+redact(rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", errs.New(errs.CodeNetwork, fmt.Sprintf("unexpected status for %s", redact(rawURL)), resp.StatusCode)
	}

	body, err := readBody(resp)
	if err != nil {
		return "", errs.Wrap(errs.CodeNetwork, "read body", err)
	}
	log.Debug("fetched", map[string]interface{}{
		"url":      redact(rawURL),
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"encoding": resp.Header.Get("Content-Encoding"),
		"elapsed":  time.Since(start).String(),
	})
	return string(body), nil
}

// readBody decodes the body according to Content-Encoding.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(reader)
}

// redact drops the query string so signed parameters do not reach logs or errors.
func redact(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// proxyFromURLString parses a proxy URL and returns a Proxy function.
func proxyFromURLString(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}
