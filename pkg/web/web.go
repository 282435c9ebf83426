// Package web checks plain https links, i.e. anything the more specific
// processors don't claim. GitHub and DataDog urls are extracted by their own
// processors and skipped here.
package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"linkcheck/pkg/cache"
	"linkcheck/pkg/config"
	"linkcheck/pkg/errs"
	"linkcheck/pkg/regex"
)

const redirectLimit = 3

// plain checks peek at the body, fragment checks have to parse the document
const (
	bodyPeekLimit  = 10240
	bodyParseLimit = 1 << 20
)

type LinkProcessor struct {
	httpClient *http.Client
	cfg        *config.Config
	store      *cache.Store
	logger     *zap.Logger

	cacheHits atomic.Int64
}

func New(cfg *config.Config, store *cache.Store, timeout time.Duration, logger *zap.Logger) *LinkProcessor {
	httpClient := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			logger.Debug("redirecting", zap.String("to", req.URL.String()), zap.Int("hops", len(via)))
			if len(via) > redirectLimit {
				return fmt.Errorf("stopped after %d redirects", redirectLimit)
			}
			for k, vs := range via[0].Header {
				if req.Header.Get(k) == "" {
					for _, v := range vs {
						req.Header.Add(k, v)
					}
				}
			}
			return nil
		},
	}

	return &LinkProcessor{
		httpClient: httpClient,
		cfg:        cfg,
		store:      store,
		logger:     logger,
	}
}

func (proc *LinkProcessor) Process(ctx context.Context, link string, _ string) error {
	proc.logger.Debug("Validating external url", zap.String("url", link))

	if proc.cfg.ShouldSkip(link) {
		proc.logger.Debug("url is excluded", zap.String("url", link))
		return nil
	}
	if proc.store.Fresh(link) {
		proc.cacheHits.Add(1)
		proc.logger.Debug("checked recently, skipping", zap.String("url", link))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", link, bytes.NewBuffer(nil))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", proc.cfg.UserAgent)
	for _, entry := range proc.cfg.HeadersFor(link) {
		req.Header.Set(entry.Name, entry.Resolved())
	}

	resp, err := proc.httpClient.Do(req)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		// we can't proceed without credentials, so we don't know whether the url is alive
		proc.logger.Info("requires auth", zap.Int("statusCode", resp.StatusCode), zap.String("url", link))
		return errs.NewUnverified(link, "requires auth")
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		proc.logger.Debug("not found", zap.Int("statusCode", resp.StatusCode), zap.String("url", link))
		return errs.NewNotFound(link)
	case resp.StatusCode == 429:
		proc.logger.Info("probably rate limit", zap.String("ra", resp.Header.Get("Retry-After")), zap.String("url", link))
		return errs.NewUnverified(link, "rate limited")
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		proc.logger.Info("problems on the remote server", zap.Int("statusCode", resp.StatusCode), zap.String("url", link))
		return errs.NewUnverified(link, fmt.Sprintf("server returned %d", resp.StatusCode))
	case 200 <= resp.StatusCode && resp.StatusCode <= 299:
		if err := proc.checkBody(resp, link); err != nil {
			return err
		}
		if err := proc.store.Record(link, resp.StatusCode); err != nil {
			proc.logger.Warn("can't record the check", zap.String("url", link), zap.Error(err))
		}
		return nil
	default:
		proc.logger.Warn("unexpected status", zap.Int("statusCode", resp.StatusCode), zap.String("url", link))
		return nil
	}
}

func (proc *LinkProcessor) checkBody(resp *http.Response, link string) error {
	var fragment string
	if u, err := url.Parse(link); err == nil {
		fragment = u.Fragment
	}
	// scroll-to-text fragments aren't element ids
	if strings.HasPrefix(fragment, ":~:") {
		fragment = ""
	}

	limit := int64(bodyPeekLimit)
	if fragment != "" {
		limit = bodyParseLimit
	}
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		// we can't read body, something is off
		return err
	}
	if err := resp.Body.Close(); err != nil {
		proc.logger.Info("error closing body: ", zap.Error(err))
	}

	if len(bodyBytes) == 0 {
		// body is empty, doesn't count as a healthy URL
		return errs.NewEmptyBody(link)
	}
	if strings.Contains(strings.ToLower(string(bodyBytes)), "page not found") {
		return errs.NewNotFound(link)
	}
	if fragment != "" {
		return proc.checkFragment(bodyBytes, link, fragment)
	}
	return nil
}

// checkFragment verifies that the document has an element the fragment can
// scroll to: anything with a matching id, or an old style <a name=...>.
func (proc *LinkProcessor) checkFragment(body []byte, link, fragment string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return err
	}

	found := false
	doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if id, _ := s.Attr("id"); id == fragment {
			found = true
			return false
		}
		return true
	})
	if !found {
		doc.Find("a[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if name, _ := s.Attr("name"); name == fragment {
				found = true
				return false
			}
			return true
		})
	}
	if !found {
		return errs.NewMissingFragment(link, fragment)
	}
	return nil
}

// CacheHits reports how many links were skipped because a fresh successful
// check was already on record.
func (proc *LinkProcessor) CacheHits() int64 {
	return proc.cacheHits.Load()
}

func (proc *LinkProcessor) ExtractLinks(line string) []string {
	parts := regex.Url.FindAllString(line, -1)
	urls := make([]string, 0, len(parts))

	for _, raw := range parts {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue // skip malformed
		}
		if regex.GitHub.MatchString(raw) {
			continue // the github processor claims these
		}
		if regex.DataDog.MatchString(raw) {
			continue // the datadog processor claims these
		}

		urls = append(urls, raw)
	}
	return urls
}
