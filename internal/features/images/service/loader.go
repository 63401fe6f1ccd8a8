package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/core/config"
	"storefront/internal/core/logger"

	"go.uber.org/zap"
)

// maxImageBytes caps how much of a remote image is streamed.
const maxImageBytes = 10 << 20

// maxRedirects matches the net/http default.
const maxRedirects = 10

var (
	// ErrMalformedURL is returned for image URLs that cannot be parsed or are not absolute.
	ErrMalformedURL = errors.New("malformed image url")
	// ErrHostNotAllowed is returned for hosts outside the allow-list.
	ErrHostNotAllowed = errors.New("image host not allowed")
	// ErrUpstream is returned when the remote host does not serve an image.
	ErrUpstream = errors.New("remote image unavailable")
)

// RemoteHost is one allow-list entry. An empty Scheme allows http and https.
type RemoteHost struct {
	Scheme   string
	Hostname string
}

// ParseRemoteHosts parses a comma separated allow-list such as
// "img.clerk.com,https://images.unsplash.com".
func ParseRemoteHosts(raw string) ([]RemoteHost, error) {
	var hosts []RemoteHost
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		var h RemoteHost
		if strings.Contains(entry, "://") {
			u, err := url.Parse(entry)
			if err != nil || u.Hostname() == "" {
				return nil, fmt.Errorf("invalid remote host %q", entry)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return nil, fmt.Errorf("invalid remote host scheme %q", entry)
			}
			h = RemoteHost{Scheme: u.Scheme, Hostname: strings.ToLower(u.Hostname())}
		} else {
			h = RemoteHost{Hostname: strings.ToLower(entry)}
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

// Image is an open remote image.
type Image struct {
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Loader fetches remote images from allow-listed hosts.
type Loader struct {
	hosts    []RemoteHost
	client   *http.Client
	maxBytes int64
	logger   *zap.Logger
}

// NewLoader creates a Loader from the images configuration.
func NewLoader(cfg config.ImagesConfig, client *http.Client) (*Loader, error) {
	hosts, err := ParseRemoteHosts(cfg.RemoteHosts)
	if err != nil {
		return nil, err
	}
	l := &Loader{
		hosts:    hosts,
		maxBytes: maxImageBytes,
		logger:   logger.Get().Named("images"),
	}

	// Every redirect hop must stay on the allow-list.
	c := *client
	c.CheckRedirect = l.checkRedirect
	l.client = &c

	return l, nil
}

func (l *Loader) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d redirects", ErrUpstream, maxRedirects)
	}
	if _, err := l.Allowed(req.URL.String()); err != nil {
		l.logger.Warn("Remote image redirect refused",
			zap.String("from", via[len(via)-1].URL.Host),
			zap.String("to", req.URL.Host),
		)
		return err
	}
	return nil
}

// Allowed validates raw and checks it against the allow-list.
func (l *Loader) Allowed(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return nil, ErrMalformedURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrMalformedURL
	}

	host := strings.ToLower(u.Hostname())
	for _, h := range l.hosts {
		if h.Hostname == host && (h.Scheme == "" || h.Scheme == u.Scheme) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
}

// URLFor routes allow-listed image URLs through the image endpoint. Anything else is returned
// unchanged.
func (l *Loader) URLFor(src string) string {
	if _, err := l.Allowed(src); err != nil {
		return src
	}
	return "/images?url=" + url.QueryEscape(src)
}

// Fetch opens the remote image. The caller closes Body.
func (l *Loader) Fetch(ctx context.Context, raw string) (*Image, error) {
	u, err := l.Allowed(raw)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrHostNotAllowed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(contentType, "image/") {
		resp.Body.Close()
		l.logger.Warn("Remote image rejected",
			zap.String("host", u.Host),
			zap.Int("status_code", resp.StatusCode),
			zap.String("content_type", contentType),
		)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if resp.ContentLength > l.maxBytes {
		resp.Body.Close()
		l.logger.Warn("Remote image too large",
			zap.String("host", u.Host),
			zap.Int64("content_length", resp.ContentLength),
		)
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrUpstream, resp.ContentLength, l.maxBytes)
	}

	// A body without a declared length is cut at maxBytes and streamed chunked.
	return &Image{
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body: struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, l.maxBytes), resp.Body},
	}, nil
}
