/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: browser.go
Description: Headless browser membership oracle for systems whose behaviour only shows
up after client-side scripts run.
*/

package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/kleascm/alfbridge/pkg/words"
)

// BrowserConfig configures the browser oracle
type BrowserConfig struct {
	// URLTemplate must contain {word}
	URLTemplate string
	// Expression is evaluated after load and must yield a boolean
	Expression string
	Separator  string
	Timeout    time.Duration
}

// Browser answers string queries with a headless Chrome session. It drives a
// single tab, so concurrent ProcessQueries calls run one after another.
type Browser struct {
	mu      sync.Mutex
	web     *Web
	config  BrowserConfig
	browser context.Context
	cancel  context.CancelFunc
}

// NewBrowser starts a browser session. Close releases it.
func NewBrowser(config BrowserConfig) (*Browser, error) {
	if config.Expression == "" {
		return nil, fmt.Errorf("accept expression is required")
	}
	// Reuse the web oracle's URL building.
	web, err := NewWeb(WebConfig{URLTemplate: config.URLTemplate, Selector: "html", Separator: config.Separator})
	if err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", true))...)
	ctx, cancel := chromedp.NewContext(allocCtx)
	return &Browser{
		web:     web,
		config:  config,
		browser: ctx,
		cancel: func() {
			cancel()
			allocCancel()
		},
	}, nil
}

// ProcessQueries loads one page per query
func (b *Browser) ProcessQueries(ctx context.Context, queries []*words.Query[string, bool]) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		tctx, cancel := context.WithTimeout(b.browser, b.config.Timeout)
		var accepted bool
		err := chromedp.Run(tctx,
			chromedp.Navigate(b.web.URL(q.Input)),
			chromedp.Evaluate(b.config.Expression, &accepted),
		)
		cancel()
		if err != nil {
			return fmt.Errorf("browser query %s: %w", q.Input, err)
		}
		q.Answer(accepted)
	}
	return nil
}

// Close shuts the browser down
func (b *Browser) Close() error {
	b.cancel()
	return nil
}
