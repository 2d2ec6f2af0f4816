// Package crawl implements the bounded-depth, host-constrained crawler
// that feeds normalized articles into the evidence store.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tickerlens/tickerlens"
	"github.com/tickerlens/tickerlens/bloom"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01

	// maxCrawlURLs limits the number of URLs processed to prevent
	// runaway crawls independent of the depth bound.
	maxCrawlURLs = 1000
)

// OutcomeStatus classifies the result of processing one URL.
type OutcomeStatus string

// Per-URL outcome statuses.
const (
	StatusSaved     OutcomeStatus = "saved"
	StatusDuplicate OutcomeStatus = "duplicate"
	StatusRejected  OutcomeStatus = "rejected"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome records what happened to a single URL in the crawl frontier.
// Failures are isolated here; they never abort the remaining frontier.
type Outcome struct {
	URL    string
	Depth  int
	Status OutcomeStatus
	Err    error
}

// Result aggregates the outcomes of one crawl.
type Result struct {
	Outcomes   []Outcome
	Saved      int
	Duplicates int
	Rejected   int
	Failed     int
}

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusSaved:
		r.Saved++
	case StatusDuplicate:
		r.Duplicates++
	case StatusRejected:
		r.Rejected++
	case StatusFailed:
		r.Failed++
	}
}

// Crawler fetches pages breadth-first from a seed URL, normalizes them,
// and inserts the resulting articles into the document store. Links are
// followed only while the remaining depth is positive and only when the
// link's host is similar to the seed's host.
type Crawler struct {
	Fetcher    tickerlens.Fetcher
	Normalizer tickerlens.Normalizer
	Links      tickerlens.LinkExtractor
	Documents  tickerlens.DocumentService

	// Summarizer, when set, backfills the stored English summary of
	// each saved article. Summary failures are logged and skipped.
	Summarizer tickerlens.Summarizer

	// Translator, when set, backfills the stored English translation of
	// saved articles whose detected language is not English. Translation
	// failures are logged and skipped.
	Translator tickerlens.Translator

	// RateLimiter throttles requests per domain. Optional.
	RateLimiter *DomainLimiter

	// AllowDuplicates bypasses the store's URL dedup check.
	AllowDuplicates bool

	// Concurrency bounds parallel fetches of sibling links at the same
	// depth. Defaults to 1 (sequential).
	Concurrency int

	// RetryDelays configures fetch retry backoff. Defaults to
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// job is one frontier entry. Depth is the remaining budget for this
// branch; it strictly decreases toward zero.
type job struct {
	url   string
	depth int
}

// Crawl walks the frontier starting at seedURL. maxDepth = 0 fetches only
// the seed. Per-URL failures are recorded in the result and never abort
// sibling work; only an invalid seed or context cancellation returns an
// error.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxDepth int) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Hostname() == "" {
		return nil, tickerlens.Errorf(tickerlens.EINVALID, "invalid seed URL %q", seedURL)
	}
	seedHost := seed.Hostname()

	seen := bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate)
	seen.Add(seedURL)

	result := &Result{}
	var mu sync.Mutex
	processed := 0

	level := []job{{url: seedURL, depth: maxDepth}}
	for len(level) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var next []job
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency())

		for _, j := range level {
			if processed >= maxCrawlURLs {
				break
			}
			processed++
			g.Go(func() error {
				outcome, links := c.processURL(gctx, j)
				mu.Lock()
				defer mu.Unlock()
				result.record(outcome)
				for _, link := range links {
					if !sameSite(seedHost, hostname(link)) {
						continue
					}
					if seen.Test(link) {
						continue
					}
					seen.Add(link)
					next = append(next, job{url: link, depth: j.depth - 1})
				}
				// Worker errors would cancel siblings, which is
				// exactly what failure isolation forbids.
				return nil
			})
		}
		_ = g.Wait()
		level = next
	}

	return result, nil
}

// processURL fetches, normalizes, and stores one URL. It returns the
// outcome and, when the remaining depth allows recursion, the outbound
// links of the fetched page. Links are followed out of rejected
// non-article pages too, so a section or index page can seed the crawl.
func (c *Crawler) processURL(ctx context.Context, j job) (Outcome, []string) {
	outcome := Outcome{URL: j.url, Depth: j.depth}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, hostname(j.url)); err != nil {
			outcome.Status = StatusFailed
			outcome.Err = err
			return outcome, nil
		}
	}

	html, err := FetchWithRetryDelays(ctx, j.url, c.Fetcher.Fetch, c.logf, c.retryDelays())
	if err != nil {
		c.logger().Warn("fetch failed", "url", j.url, "error", err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome, nil
	}

	doc, err := c.Normalizer.Normalize(html, j.url)
	if err != nil {
		if tickerlens.ErrorCode(err) == tickerlens.EREJECTED {
			c.logger().Debug("not an article, skipping", "url", j.url)
			outcome.Status = StatusRejected
		} else {
			c.logger().Warn("normalize failed", "url", j.url, "error", err)
			outcome.Status = StatusFailed
		}
		outcome.Err = err
		return outcome, c.outboundLinks(html, j)
	}

	if err := c.Documents.InsertDocument(ctx, doc, c.AllowDuplicates); err != nil {
		if tickerlens.ErrorCode(err) == tickerlens.ECONFLICT {
			c.logger().Debug("duplicate detected, skipping", "url", j.url)
			outcome.Status = StatusDuplicate
		} else {
			c.logger().Warn("insert failed", "url", j.url, "error", err)
			outcome.Status = StatusFailed
		}
		outcome.Err = err
		return outcome, c.outboundLinks(html, j)
	}
	outcome.Status = StatusSaved

	if c.Summarizer != nil {
		if summary, err := c.Summarizer.Summarize(ctx, doc.BodyText); err != nil {
			c.logger().Warn("summarize failed", "url", j.url, "error", err)
		} else if err := c.Documents.UpdateSummary(ctx, doc.ID, summary); err != nil {
			c.logger().Warn("summary backfill failed", "url", j.url, "error", err)
		}
	}

	if c.Translator != nil && needsTranslation(doc.Language) {
		if translation, err := c.Translator.Translate(ctx, doc.BodyText); err != nil {
			c.logger().Warn("translate failed", "url", j.url, "error", err)
		} else if err := c.Documents.UpdateTranslation(ctx, doc.ID, translation); err != nil {
			c.logger().Warn("translation backfill failed", "url", j.url, "error", err)
		}
	}

	return outcome, c.outboundLinks(html, j)
}

// needsTranslation reports whether a detected language calls for an
// English translation. An undetected language is not treated as foreign.
func needsTranslation(lang string) bool {
	return lang != "" && lang != "unknown" && !strings.HasPrefix(lang, "en")
}

// outboundLinks extracts links for recursion while depth budget remains.
// Extraction failures only stop this branch's recursion.
func (c *Crawler) outboundLinks(html string, j job) []string {
	if j.depth <= 0 || c.Links == nil {
		return nil
	}
	links, err := c.Links.ExtractLinks(html, j.url)
	if err != nil {
		c.logger().Warn("link extraction failed", "url", j.url, "error", err)
		return nil
	}
	return links
}

func (c *Crawler) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return 1
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays != nil {
		return c.RetryDelays
	}
	return DefaultRetryDelays()
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Crawler) logf(format string, args ...any) {
	c.logger().Debug("retrying fetch", "detail", format, "args", args)
}

// hostname extracts the host of a URL, empty on parse failure.
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
