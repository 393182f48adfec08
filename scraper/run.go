package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/pipeline"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// batchStats accumulates the counters of a single Run.
type batchStats struct {
	successes int64
	failures  int64
	retries   int64
	images    int64

	mu           sync.Mutex
	failedURLs   []string
	errorsByType map[string]int
	byMethod     map[models.Method]int
}

func newBatchStats() *batchStats {
	return &batchStats{
		errorsByType: make(map[string]int),
		byMethod:     make(map[models.Method]int),
	}
}

// Run scrapes urls with bounded parallelism and streams successful recipes
// into p. Timeouts and connection failures are retried with capped
// exponential backoff; every other failure is final.
func (s *Scraper) Run(ctx context.Context, urls []string, p *pipeline.Pipeline) (*models.BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	requestsBefore := atomic.LoadInt64(&s.requestCount)
	stats := newBatchStats()

	limit := s.cfg.Parallelism
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, rawURL := range urls {
		rawURL := rawURL
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out := s.scrapeWithRetry(ctx, rawURL, stats)
			if !out.Success() {
				stats.recordFailure(out)
				return nil
			}

			stats.recordSuccess(out.Method)
			record := &models.ScrapedRecipe{
				ID:        uuid.NewString(),
				SourceURL: out.URL,
				Method:    out.Method,
				Recipe:    *out.Recipe,
				ScrapedAt: time.Now(),
			}
			if path := s.retrieveImage(ctx, out); path != "" {
				record.ImagePath = path
				atomic.AddInt64(&stats.images, 1)
			}
			if err := p.Process(record); err != nil && !errors.Is(err, pipeline.ErrPipelineClosed) {
				slog.Error("pipeline process error", slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()

	result := stats.result()
	result.StartTime = start
	result.EndTime = time.Now()
	result.URLCount = len(urls)
	result.RequestCount = int(atomic.LoadInt64(&s.requestCount) - requestsBefore)

	if metrics := p.GetMetrics(); metrics != nil {
		if processed, ok := metrics["processed_recipes"].(int64); ok {
			result.ProcessedCount = int(processed)
		}
	}

	return result, ctx.Err()
}

func (s *Scraper) scrapeWithRetry(ctx context.Context, rawURL string, stats *batchStats) models.Outcome {
	for attempt := 1; ; attempt++ {
		out := s.Scrape(ctx, rawURL)
		if out.Success() || !retryable(out.Err) || attempt > s.cfg.MaxRetries {
			return out
		}

		atomic.AddInt64(&stats.retries, 1)
		s.Metrics.IncRetries()
		delay := s.backoff(attempt)
		slog.Debug("retrying scrape",
			slog.String("url", out.URL),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("reason", out.Reason),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return out
		case <-timer.C:
		}
	}
}

func (s *Scraper) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	base := s.cfg.RetryBackoff
	if base <= 0 {
		base = 100 * time.Millisecond
	}

	delay := base * time.Duration(1<<(attempt-1))
	if ceiling := s.cfg.RetryBackoffMax; ceiling > 0 && delay > ceiling {
		delay = ceiling
	}
	return delay
}

func (s *Scraper) retrieveImage(ctx context.Context, out models.Outcome) string {
	if s.images == nil || out.Recipe.ImageURL == "" {
		return ""
	}
	s.Metrics.IncRequest("image")
	path, err := s.images.Retrieve(ctx, out.Recipe.ImageURL)
	if err != nil {
		slog.Warn("hero image download failed",
			slog.String("url", out.URL),
			slog.String("image_url", out.Recipe.ImageURL),
			slog.Any("error", err),
		)
		return ""
	}
	return path
}

func (b *batchStats) recordFailure(out models.Outcome) {
	category := errorTypeLabel(out.Err)
	slog.Error("scrape failed",
		slog.String("url", out.URL),
		slog.String("category", category),
		slog.String("reason", out.Reason),
	)

	b.mu.Lock()
	b.failures++
	b.errorsByType[category]++
	b.failedURLs = append(b.failedURLs, out.URL)
	b.mu.Unlock()
}

func (b *batchStats) recordSuccess(method models.Method) {
	b.mu.Lock()
	b.successes++
	b.byMethod[method]++
	b.mu.Unlock()
}

// result copies the counters into a BatchResult that no longer shares
// state with b.
func (b *batchStats) result() *models.BatchResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := make([]string, len(b.failedURLs))
	copy(failed, b.failedURLs)
	errorsByType := make(map[string]int, len(b.errorsByType))
	for k, v := range b.errorsByType {
		errorsByType[k] = v
	}
	byMethod := make(map[models.Method]int, len(b.byMethod))
	for k, v := range b.byMethod {
		byMethod[k] = v
	}

	return &models.BatchResult{
		SuccessCount: int(b.successes),
		ErrorCount:   int(b.failures),
		FailedURLs:   failed,
		ErrorsByType: errorsByType,
		ByMethod:     byMethod,
		RetryCount:   int(atomic.LoadInt64(&b.retries)),
		ImageCount:   int(atomic.LoadInt64(&b.images)),
	}
}
