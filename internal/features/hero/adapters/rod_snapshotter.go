package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"storefront/internal/core/config"
	"storefront/internal/core/logger"
	"storefront/internal/core/proxy"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// RodSnapshotter implements ports.Snapshotter with a headless Chromium. Each slide is loaded
// from the deck render endpoint and the banner element is captured as PNG.
type RodSnapshotter struct {
	baseURL      *url.URL
	proxy        proxy.Settings
	allowedHosts []string
	cfg          config.SnapshotConfig
	logger       *zap.Logger
}

// NewRodSnapshotter creates a RodSnapshotter that renders banners served at baseURL. When the
// proxy needs credentials, the browser goes through a local forwarder that only lets baseURL and
// allowedHosts through.
func NewRodSnapshotter(baseURL string, settings proxy.Settings, cfg config.SnapshotConfig, allowedHosts ...string) (*RodSnapshotter, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid snapshot base url %q", baseURL)
	}

	hosts := append([]string{u.Hostname()}, allowedHosts...)

	return &RodSnapshotter{
		baseURL:      u,
		proxy:        settings,
		allowedHosts: hosts,
		cfg:          cfg,
		logger:       logger.Get().Named("snapshotter"),
	}, nil
}

// PageURL is the URL the browser loads for slide index of deck.
func (s *RodSnapshotter) PageURL(deck string, index int) string {
	u := s.baseURL.JoinPath("hero", "decks", deck, "render")
	u.RawQuery = url.Values{"index": {strconv.Itoa(index)}}.Encode()
	return u.String()
}

// Snapshot captures one PNG per slide. Empty decks produce no images and start no browser.
func (s *RodSnapshotter) Snapshot(ctx context.Context, deck string, slides int) ([][]byte, error) {
	if slides <= 0 {
		return nil, nil
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var proxyAddr string
	if s.proxy.NeedsForwarder() {
		fwd, err := proxy.NewForwardingProxy(s.proxy.FullURL(), s.allowedHosts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create proxy forwarder: %w", err)
		}
		proxyAddr, err = fwd.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to start proxy forwarder: %w", err)
		}
		defer func() {
			if err := fwd.Stop(); err != nil {
				s.logger.Debug("Proxy forwarder did not stop cleanly", zap.Error(err))
			}
		}()
	} else if s.proxy.HasProxy() {
		proxyAddr = s.proxy.HostPort()
	}

	s.logger.Debug("Launching browser",
		zap.String("deck", deck),
		zap.Int("slides", slides),
		zap.Bool("proxy_enabled", proxyAddr != ""),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if proxyAddr != "" {
		l = l.Proxy(proxyAddr)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Kill()

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.Width,
		Height:            s.cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	shots := make([][]byte, 0, slides)
	for i := 0; i < slides; i++ {
		target := s.PageURL(deck, i)
		if err := page.Navigate(target); err != nil {
			return nil, fmt.Errorf("failed to load slide %d: %w", i, err)
		}
		if err := page.WaitLoad(); err != nil {
			return nil, fmt.Errorf("failed to load slide %d: %w", i, err)
		}

		el, err := page.Element("[data-hero]")
		if err != nil {
			return nil, fmt.Errorf("banner not found on slide %d: %w", i, err)
		}

		img, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to capture slide %d: %w", i, err)
		}
		shots = append(shots, img)

		s.logger.Debug("Captured slide", zap.String("deck", deck), zap.Int("index", i), zap.Int("bytes", len(img)))
	}

	return shots, nil
}
