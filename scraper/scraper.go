// Package scraper fetches recipe pages and extracts a normalized recipe from
// them by trying a fixed sequence of extraction tiers over one parsed DOM.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/config"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/gocolly/colly/v2"
)

const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	ctxStatus = "status"
	ctxBody   = "body"
	ctxStart  = "start"
)

// ImageRetriever downloads a hero image and returns its stored location.
type ImageRetriever interface {
	Retrieve(ctx context.Context, imageURL string) (string, error)
}

// Scraper wraps the colly collector and the extraction tiers.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	tiers     []tier
	images    ImageRetriever
	Metrics   *Metrics

	// requestCount is the lifetime number of page requests. Run reports the
	// difference across its own span.
	requestCount int64
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(cfg.MaxBodySize),
	)
	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	collector.ParseHTTPErrorResponse = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	s := &Scraper{
		cfg:       cfg,
		collector: collector,
		tiers:     defaultTiers(),
		Metrics:   NewMetrics(),
	}
	s.configureHandlers()
	return s, nil
}

// SetImageRetriever enables hero image downloads during Run.
func (s *Scraper) SetImageRetriever(r ImageRetriever) {
	s.images = r
}

func (s *Scraper) configureHandlers() {
	s.collector.OnRequest(func(r *colly.Request) {
		r.Ctx.Put(ctxStart, time.Now())
		atomic.AddInt64(&s.requestCount, 1)
		s.Metrics.IncRequest("page")
	})

	s.collector.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(ctxStatus, r.StatusCode)
		r.Ctx.Put(ctxBody, string(r.Body))
		if start, ok := r.Ctx.GetAny(ctxStart).(time.Time); ok {
			s.Metrics.ObserveDuration(time.Since(start))
		}
	})
}

// Scrape fetches rawURL once and runs the extraction tiers over the page.
// Failures are reported in the returned outcome, never as a panic.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) models.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return s.fail(rawURL, err)
	}

	body, err := s.fetch(ctx, target)
	if err != nil {
		return s.fail(target, err)
	}
	return s.ScrapeHTML(body, target)
}

// ScrapeHTML runs the extraction tiers over already fetched HTML. origin is
// used to resolve relative image URLs and to pick a site profile.
func (s *Scraper) ScrapeHTML(rawHTML, origin string) models.Outcome {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return s.fail(origin, fmt.Errorf("parse html: %w", ErrNoRecipeFound))
	}

	p := &page{url: origin, html: rawHTML, doc: doc}
	for _, t := range s.tiers {
		recipe := t.run(p)
		if recipe == nil {
			slog.Debug("tier produced no recipe", slog.String("method", string(t.method)), slog.String("url", origin))
			continue
		}

		slog.Info("recipe extracted", slog.String("method", string(t.method)), slog.String("url", origin))
		s.Metrics.IncRecipe(t.method)
		return models.Outcome{URL: origin, Method: t.method, Recipe: recipe}
	}
	return s.fail(origin, ErrNoRecipeFound)
}

func (s *Scraper) fail(target string, err error) models.Outcome {
	category := errorTypeLabel(err)
	s.Metrics.IncError(category)
	slog.Debug("scrape failed",
		slog.String("url", target),
		slog.String("category", category),
		slog.Any("error", err),
	)
	return models.Outcome{URL: target, Reason: failureReason(err), Err: err}
}

// NormalizeURL defaults a bare host to https and rejects anything that is
// not an absolute http(s) URL with a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL{URL: raw, Reason: err.Error()}
	}
	if parsed.Scheme == "" {
		parsed, err = url.Parse("https://" + raw)
		if err != nil {
			return "", ErrInvalidURL{URL: raw, Reason: err.Error()}
		}
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return "", ErrInvalidURL{URL: raw, Reason: "only http and https are supported"}
	}
	if parsed.Host == "" {
		return "", ErrInvalidURL{URL: raw, Reason: "missing host"}
	}
	return parsed.String(), nil
}

// fetch issues one GET for target and returns the body of a 2xx response.
func (s *Scraper) fetch(ctx context.Context, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", classifyError(err, 0)
	}

	hdr := http.Header{}
	hdr.Set("Accept", acceptHTML)
	if s.cfg.AcceptLanguage != "" {
		hdr.Set("Accept-Language", s.cfg.AcceptLanguage)
	}

	reqCtx := colly.NewContext()
	if err := s.collector.Request(http.MethodGet, target, nil, reqCtx, hdr); err != nil {
		return "", classifyError(err, 0)
	}

	status, _ := reqCtx.GetAny(ctxStatus).(int)
	if status < 200 || status > 299 {
		return "", classifyError(nil, status)
	}
	body, _ := reqCtx.GetAny(ctxBody).(string)
	return body, nil
}

func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrConnection{Err: err}
	}
	if connectionFailure(err) {
		return ErrConnection{Err: err}
	}

	if err == nil {
		return ErrHTTPStatus{Code: statusCode}
	}
	return err
}
