// Package browser captures a rendered page via a headless Chrome
// driven by Rod. Unlike the static fetcher, it observes computed
// styles, geometry, focus and viewport state, and takes a screenshot
// that is attached to the compiled prompt.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/MikeSquared-Agency/mira/internal/page"
)

// Config configures the capturer.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local headless Chrome via launcher.
	RemoteURL string

	// NavTimeout bounds navigation + load wait. Default: 30s.
	NavTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Capturer owns one browser connection, shared by concurrent captures.
// Each capture runs in its own tab.
type Capturer struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

func New(cfg Config) *Capturer {
	cfg.defaults()
	return &Capturer{cfg: cfg}
}

// Start launches Chrome, or connects to the configured remote instance.
func (c *Capturer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	controlURL := c.cfg.RemoteURL
	if controlURL == "" {
		c.lnch = launcher.New().Headless(true)
		u, err := c.lnch.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch chrome: %w", err)
		}
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}
	c.browser = b
	c.cfg.Logger.Info("browser ready", "remote", c.cfg.RemoteURL != "")
	return nil
}

func (c *Capturer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		_ = c.browser.Close()
		c.browser = nil
	}
	if c.lnch != nil {
		c.lnch.Cleanup()
		c.lnch = nil
	}
}

// Capture opens a stealth tab, navigates to the target, snapshots the
// visible UI state and takes a full-page screenshot.
func (c *Capturer) Capture(ctx context.Context, url string) (*page.Document, error) {
	c.mu.Lock()
	b := c.browser
	c.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser: not started")
	}

	p, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	defer p.Close()

	navCtx, cancel := context.WithTimeout(ctx, c.cfg.NavTimeout)
	defer cancel()

	if err := p.Context(navCtx).Navigate(url); err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := p.Context(navCtx).WaitLoad(); err != nil {
		c.cfg.Logger.Warn("wait load timeout", "url", url, "error", err)
	}

	doc, err := snapshot(navCtx, p)
	if err != nil {
		return nil, err
	}

	shot, err := p.Context(navCtx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		// A missing screenshot degrades the prompt, not the run.
		c.cfg.Logger.Warn("screenshot failed", "url", url, "error", err)
	} else {
		doc.Screenshot = shot
	}

	return doc, nil
}
