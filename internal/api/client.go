// Package api implements the HTTP transport to the storefront admin API.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tgstore/adminctl/internal/progress"
)

// maxResponseBody bounds how much of a response body is read when looking
// for an error message.
const maxResponseBody = 64 << 10

// MediaKind selects the product media endpoint.
type MediaKind string

// Media kinds accepted by the admin API.
const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Extensions the server accepts per kind when the content type is not
// conclusive. Mirrors the server-side gate so mismatches fail before a
// transfer is burned.
var kindExtensions = map[MediaKind][]string{
	MediaImage: {"jpg", "jpeg", "png", "gif", "webp", "bmp"},
	MediaVideo: {"mp4", "mov", "webm", "avi", "mkv", "m4v"},
}

// MatchesKind reports whether the file name's extension is acceptable for
// the given media kind.
func MatchesKind(filename string, kind MediaKind) bool {
	name := strings.ToLower(filename)
	i := strings.LastIndex(name, ".")
	if i == -1 || i == len(name)-1 {
		return false
	}
	ext := name[i+1:]
	for _, e := range kindExtensions[kind] {
		if ext == e {
			return true
		}
	}
	return false
}

// UploadRequest describes one media transfer to a product endpoint.
type UploadRequest struct {
	ProductID int64
	Kind      MediaKind
	Filename  string
	Size      int64 // -1 when unknown
	Body      io.Reader
}

// Client talks to the storefront admin REST API.
type Client struct {
	base   *url.URL
	token  string
	http   *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Timeouts are the transport's
// responsibility; the upload orchestration adds none of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets a logger. By default, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates an admin API client for the given base URL. The token is sent
// as X-Admin-Token on every request.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		base:   u,
		token:  token,
		http:   &http.Client{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UploadMedia streams one file to the product's image or video endpoint as
// a multipart request, reporting transfer progress through onProgress.
// Non-success responses are mapped to sentinel errors or an UploadError
// carrying the server's message.
func (c *Client) UploadMedia(ctx context.Context, req UploadRequest, onProgress progress.Func) error {
	if req.Body == nil {
		return errors.New("upload: no file body")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	tracked := progress.NewReader(req.Body, req.Size, onProgress)

	go func() {
		part, err := mw.CreateFormFile("file", req.Filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, tracked); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	dest := c.base.JoinPath("api", "products", strconv.FormatInt(req.ProductID, 10), string(req.Kind))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, dest.String(), pr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("X-Admin-Token", c.token)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send %s: %w", req.Kind, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	c.logger.Debug("media upload finished",
		"product", req.ProductID,
		"kind", req.Kind,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatus(resp.StatusCode, body)
	}
	return nil
}
