package ontarioparks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campscan/config"
	"campscan/models"
	"campscan/services"
	"campscan/utils"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	renderDelay = 3 * time.Second
	settleDelay = 2 * time.Second
)

// loadMoreScript clicks the first visible "show more / next" affordance and
// reports whether anything was clicked.
const loadMoreScript = `
	(function() {
		var labels = ['load more', 'show more', 'more results', 'next'];
		var nodes = document.querySelectorAll('button, a[role="button"], a');
		for (var i = 0; i < nodes.length; i++) {
			var t = (nodes[i].innerText || '').trim().toLowerCase();
			for (var j = 0; j < labels.length; j++) {
				if (t === labels[j] || t.indexOf(labels[j]) === 0) {
					nodes[i].click();
					return true;
				}
			}
		}
		return false;
	})()
`

// SessionError marks a browser session that failed to launch or navigate.
// It is the only failure a scan surfaces to its caller; everything softer
// degrades into the ScanResult.
type SessionError struct {
	Campground string
	Err        error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session failed for %q: %v", e.Campground, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Scanner drives browser sessions against Ontario Parks search pages and
// extracts availability records from each.
type Scanner struct {
	cfg        *config.Config
	params     models.SearchParams
	logger     *utils.Logger
	limiter    *utils.RateLimiter
	normalizer *services.Normalizer
}

// NewScanner creates a Scanner for one run's search parameters
func NewScanner(cfg *config.Config, params models.SearchParams, logger *utils.Logger) *Scanner {
	return &Scanner{
		cfg:        cfg,
		params:     params,
		logger:     logger,
		limiter:    utils.NewRateLimiter(cfg.RateLimitDelay),
		normalizer: services.NewNormalizer(logger, params),
	}
}

// newContext creates a fresh chromedp allocator and context. One isolated
// browser per campground: separate cookie jar, no state leaking between
// scans.
func (s *Scanner) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1366, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// Scan runs one campground scan end to end. It always returns a ScanResult;
// the error is non-nil only for session-level failures (launch/navigate),
// which the multi-campground run uses to skip the entry and continue.
func (s *Scanner) Scan(ctx context.Context, cg models.Campground) (*models.ScanResult, error) {
	result := &models.ScanResult{
		Campground: cg,
		ScannedAt:  time.Now(),
		Status:     models.ScanFailed,
	}

	target, err := BuildSearchURL(cg.URL, s.params)
	if err != nil {
		return result, &SessionError{Campground: cg.Name, Err: err}
	}

	browserCtx, cancel := s.newContext(ctx)
	defer cancel()

	scanCtx, cancelTimeout := context.WithTimeout(browserCtx, time.Duration(s.cfg.ScanTimeoutSec)*time.Second)
	defer cancelTimeout()

	interceptor := NewInterceptor(s.logger)
	interceptor.Attach(scanCtx)

	if err := s.limiter.Wait(ctx); err != nil {
		return result, &SessionError{Campground: cg.Name, Err: err}
	}

	s.logger.Info("Scanning '%s'...", cg.Name)
	s.logger.Debug("Target URL: %s", target)

	navErr := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		return chromedp.Run(scanCtx,
			network.Enable(),
			chromedp.Navigate(target),
			chromedp.Sleep(renderDelay),
		)
	}, s.logger)
	if navErr != nil {
		if timedOut(scanCtx) {
			result.Status = models.ScanPartial
			return result, nil
		}
		return result, &SessionError{Campground: cg.Name, Err: navErr}
	}

	records, seen, partial := s.runInteractionRounds(scanCtx, interceptor, cg)

	result.Records = records
	result.CandidatesSeen = seen
	result.RecordsKept = len(records)
	if partial {
		result.Status = models.ScanPartial
	} else {
		result.Status = models.ScanSuccess
	}
	s.logger.Info("'%s': %d records from %d candidates (status=%s)",
		cg.Name, result.RecordsKept, result.CandidatesSeen, result.Status)
	return result, nil
}

// runInteractionRounds repeatedly settles the page, drains both extraction
// sources, and merges the normalized records. It stops when a round adds no
// new merge keys, when no further pagination affordance exists, or when the
// round budget or scan deadline runs out.
func (s *Scanner) runInteractionRounds(scanCtx context.Context, interceptor *Interceptor, cg models.Campground) ([]*models.AvailabilityRecord, int, bool) {
	var records []*models.AvailabilityRecord
	tracker := utils.NewKeyTracker()
	candidatesSeen := 0

	for round := 0; round < s.cfg.MaxInteractions; round++ {
		if err := chromedp.Run(scanCtx, chromedp.Sleep(settleDelay)); err != nil {
			return records, candidatesSeen, timedOut(scanCtx)
		}

		candidates := interceptor.Drain()

		var text string
		if err := chromedp.Run(scanCtx, chromedp.Evaluate(`document.body ? document.body.innerText : ''`, &text)); err != nil {
			if timedOut(scanCtx) {
				return records, candidatesSeen, true
			}
			s.logger.Debug("Text capture failed on round %d: %v", round+1, err)
		}
		candidates = append(candidates, ExtractFromText(text)...)
		candidatesSeen += len(candidates)

		records = s.mergeCandidates(records, candidates, cg.Name)

		newKeys := 0
		for _, rec := range records {
			if tracker.Add(rec.Key()) {
				newKeys++
			}
		}
		s.logger.Debug("'%s' round %d: %d candidates, %d new rows", cg.Name, round+1, len(candidates), newKeys)
		if round > 0 && newKeys == 0 {
			break
		}
		if round == s.cfg.MaxInteractions-1 {
			break
		}

		var clicked bool
		if err := chromedp.Run(scanCtx, chromedp.Evaluate(loadMoreScript, &clicked)); err != nil {
			return records, candidatesSeen, timedOut(scanCtx)
		}
		if !clicked {
			break
		}
		if err := s.limiter.Wait(scanCtx); err != nil {
			return records, candidatesSeen, timedOut(scanCtx)
		}
	}

	// Late responses may still be buffered after the last round.
	records = s.mergeCandidates(records, interceptor.Drain(), cg.Name)
	return records, candidatesSeen, false
}

func (s *Scanner) mergeCandidates(records []*models.AvailabilityRecord, candidates []models.RawCandidate, campground string) []*models.AvailabilityRecord {
	var incoming []*models.AvailabilityRecord
	for _, c := range candidates {
		if rec := s.normalizer.Normalize(c, campground); rec != nil {
			incoming = append(incoming, rec)
		}
	}
	return services.Merge(records, incoming)
}

// ScanAll scans every campground on a bounded worker pool. A campground
// whose session fails is reported and skipped; the rest keep running.
// Results come back in entry order.
func (s *Scanner) ScanAll(ctx context.Context, entries []models.Campground) []*models.ScanResult {
	workers := s.cfg.ScanConcurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	results := make([]*models.ScanResult, len(entries))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cg := entries[idx]
				res, err := s.Scan(ctx, cg)
				if err != nil {
					var sessErr *SessionError
					if errors.As(err, &sessErr) {
						s.logger.Error("Scan failed for '%s': %v", cg.Name, sessErr.Err)
					} else {
						s.logger.Error("Scan failed for '%s': %v", cg.Name, err)
					}
				}
				results[idx] = res
			}
		}()
	}

dispatch:
	for i := range entries {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Entries never dispatched (run cancelled) still get a failed result.
	for i, res := range results {
		if res == nil {
			results[i] = &models.ScanResult{
				Campground: entries[i],
				ScannedAt:  time.Now(),
				Status:     models.ScanFailed,
			}
		}
	}
	return results
}

func timedOut(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
