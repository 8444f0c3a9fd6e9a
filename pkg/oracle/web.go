/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: web.go
Description: HTTP membership oracle. Each query becomes a GET request; the word is
accepted when the response document matches a CSS selector.
*/

package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kleascm/alfbridge/pkg/words"
)

// WebConfig configures the HTTP oracle
type WebConfig struct {
	// URLTemplate must contain {word}, replaced by the query-escaped word
	URLTemplate string
	// Selector accepts the word when it matches at least one element
	Selector  string
	Separator string
	Timeout   time.Duration
	Client    *http.Client
}

// Web answers string queries by probing a web application
type Web struct {
	config WebConfig
	client *http.Client
}

// NewWeb validates config and creates the oracle
func NewWeb(config WebConfig) (*Web, error) {
	if !strings.Contains(config.URLTemplate, "{word}") {
		return nil, fmt.Errorf("url template %q has no {word} placeholder", config.URLTemplate)
	}
	if config.Selector == "" {
		return nil, fmt.Errorf("selector is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &Web{config: config, client: client}, nil
}

// URL returns the request URL for w
func (o *Web) URL(w words.Word[string]) string {
	joined := strings.Join(w, o.config.Separator)
	return strings.ReplaceAll(o.config.URLTemplate, "{word}", url.QueryEscape(joined))
}

// ProcessQueries issues one request per query
func (o *Web) ProcessQueries(ctx context.Context, queries []*words.Query[string, bool]) error {
	for _, q := range queries {
		ok, err := o.check(ctx, q.Input)
		if err != nil {
			return err
		}
		q.Answer(ok)
	}
	return nil
}

func (o *Web) check(ctx context.Context, w words.Word[string]) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.URL(w), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", w, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return false, fmt.Errorf("query %s: server returned %s", w, resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to parse response for %s: %w", w, err)
	}
	return doc.Find(o.config.Selector).Length() > 0, nil
}
