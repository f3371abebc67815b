package appstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reviewsync/internal/domain"
	"reviewsync/internal/retry"
)

const defaultRetryAfter = 60 * time.Second

// Config holds App Store feed client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	PageDelay time.Duration
	Retry     retry.Policy
}

// Limiter gates outbound requests against the per-workspace call budget.
// Satisfied by ratelimit.Limiter.
type Limiter interface {
	Allow(workspaceID int64) bool
	RetryAfter() time.Duration
}

// Source walks one sorted customer reviews listing page by page.
type Source struct {
	httpClient *http.Client
	baseURL    string
	pageDelay  time.Duration
	policy     retry.Policy
	limiter    Limiter
	logger     *slog.Logger
}

// Result is one listing walk: the normalized reviews plus pages fetched.
type Result struct {
	Reviews []domain.Review
	Pages   int
}

func New(cfg Config, limiter Limiter, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		pageDelay: cfg.PageDelay,
		policy:    cfg.Retry,
		limiter:   limiter,
		logger:    logger.With("component", "appstore"),
	}
}

// FetchReviews walks the listing for one sort order until the feed stops
// advertising a next page, pageCap pages were fetched, or recordCap reviews
// were collected. Every page request consumes one token from the workspace's
// call budget. Entries that fail normalization are skipped, not fatal.
// On error the reviews gathered so far are still returned.
func (s *Source) FetchReviews(ctx context.Context, workspaceID int64, externalID, country, sort string, pageCap, recordCap int) (*Result, error) {
	res := &Result{}

	url := s.pageURL(externalID, country, sort, 1)

	for url != "" && res.Pages < pageCap && len(res.Reviews) < recordCap {
		if res.Pages > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(s.pageDelay):
			}
		}

		if !s.limiter.Allow(workspaceID) {
			return res, domain.RateLimited(s.limiter.RetryAfter())
		}

		var feed *feedResponse
		err := retry.Do(ctx, s.policy, func(ctx context.Context) error {
			var reqErr error
			feed, reqErr = s.doRequest(ctx, url)
			return reqErr
		})
		if err != nil {
			return res, fmt.Errorf("fetch page %d for sort %s: %w", res.Pages+1, sort, err)
		}
		res.Pages++

		reviews := s.normalize(feed.Feed.Entry, country, sort)
		res.Reviews = append(res.Reviews, reviews...)

		s.logger.Debug("fetched page",
			"sort", sort,
			"page", res.Pages,
			"reviews", len(reviews),
			"total", len(res.Reviews),
		)

		next := nextPageURL(feed.Feed.Link)
		if next == "" || next == url {
			break
		}
		url = next
	}

	if len(res.Reviews) > recordCap {
		res.Reviews = res.Reviews[:recordCap]
	}

	return res, nil
}

func (s *Source) pageURL(externalID, country, sort string, page int) string {
	return fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/id=%s/sortby=%s/json",
		s.baseURL, country, page, externalID, sort)
}

func (s *Source) doRequest(ctx context.Context, url string) (*feedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Terminal(domain.CodeInternal, "create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ReviewSync/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, domain.Retryable(domain.CodeTimeout, err, "request timed out")
		}
		return nil, domain.Retryable(domain.CodeUpstreamError, err, "execute request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.Terminal(domain.CodeUpstreamNotFound, "app not found upstream")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.RateLimited(retryAfterHint(resp))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, domain.Retryable(domain.CodeUpstreamError, nil, "unexpected status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, domain.Retryable(domain.CodeUpstreamError, err, "decode feed")
	}

	return &feed, nil
}

func retryAfterHint(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryAfter
}

// nextPageURL finds the rel=next link. The feed advertises the XML form,
// so rewrite it to JSON and drop the urlDesc parameter.
func nextPageURL(links linkList) string {
	for _, link := range links {
		if link.Attributes.Rel != "next" {
			continue
		}

		next := link.Attributes.Href
		if strings.Contains(next, "xml") {
			next = strings.Replace(next, "/xml", "/json", 1)
			if idx := strings.Index(next, "?urlDesc="); idx >= 0 {
				next = next[:idx]
			}
		}
		return next
	}
	return ""
}

func (s *Source) normalize(entries entryList, country, sort string) []domain.Review {
	reviews := make([]domain.Review, 0, len(entries))

	for _, entry := range entries {
		if entry.ID.Label == "" {
			continue
		}

		rating, err := strconv.Atoi(entry.Rating.Label)
		if err != nil || rating < 1 || rating > 5 {
			s.logger.Warn("skipping review with invalid rating",
				"external_id", entry.ID.Label,
				"rating", entry.Rating.Label,
			)
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, entry.Updated.Label)
		if err != nil {
			s.logger.Warn("skipping review with invalid timestamp",
				"external_id", entry.ID.Label,
				"updated", entry.Updated.Label,
			)
			continue
		}

		review := domain.Review{
			ExternalID:  entry.ID.Label,
			Rating:      rating,
			Content:     entry.Content.Label,
			Country:     country,
			PublishedAt: publishedAt,
			VoteSum:     atoiOrZero(entry.VoteSum.Label),
			VoteCount:   atoiOrZero(entry.VoteCount.Label),
			Source:      sort,
		}

		if entry.Title.Label != "" {
			review.Title = &entry.Title.Label
		}
		if entry.Author.Name.Label != "" {
			review.Author = &entry.Author.Name.Label
		}
		if entry.Version.Label != "" {
			review.Version = &entry.Version.Label
		}

		reviews = append(reviews, review)
	}

	return reviews
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
