// Package travelapi implements ports.TravelMatrixSource against the
// external travel-matrix distance/duration API named out-of-scope in
// spec.md §2/§5, using github.com/go-resty/resty/v2 the way
// bigzoro-analysis's API test harness drives resty requests. The router
// only depends on the ports.TravelMatrixSource interface; internal/orchestrate
// is the sole place that constructs a concrete *Client, wiring it in as
// router.Config.Fallback when TRAVEL_API_BASE_URL is configured.
package travelapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/ports"
)

// MinCallInterval is the minimum spacing between calls sharing the same
// rate-limit key (spec.md §5: "rate-limited to >= 1.6 s between calls per
// key").
const MinCallInterval = 1600 * time.Millisecond

// Client is a rate-limited HTTP client for the travel-matrix API, used as
// a fallback when the precomputed matrix is missing a pair the solver
// needs.
type Client struct {
	http    *resty.Client
	baseURL string

	mu       sync.Mutex
	lastCall map[string]time.Time // rate-limit key -> last call time
}

var _ ports.TravelMatrixSource = (*Client)(nil)

// New builds a Client pointed at baseURL, with a conservative default
// timeout matching the kind of external dependency spec.md §2 calls out as
// a collaborator, not a core concern.
func New(baseURL string) *Client {
	return &Client{
		http:     resty.New().SetTimeout(10 * time.Second),
		baseURL:  baseURL,
		lastCall: make(map[string]time.Time),
	}
}

type legResponse struct {
	DistanceM   float64 `json:"distance_m"`
	DurationSec int     `json:"duration_s"`
}

// Lookup implements ports.TravelMatrixSource, rate-limited per branch
// (the API key every call shares).
func (c *Client) Lookup(ctx context.Context, branch model.BranchID, i, j model.PointID) (model.TravelLeg, error) {
	if err := c.wait(ctx, string(branch)); err != nil {
		return model.TravelLeg{}, err
	}

	var out legResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"branch": string(branch),
			"from":   string(i),
			"to":     string(j),
		}).
		SetResult(&out).
		Get(c.baseURL + "/travel-matrix/leg")
	if err != nil {
		return model.TravelLeg{}, fmt.Errorf("travel-matrix API request for %s->%s: %w", i, j, err)
	}
	if resp.IsError() {
		return model.TravelLeg{}, fmt.Errorf("travel-matrix API returned %d for %s->%s", resp.StatusCode(), i, j)
	}

	return model.TravelLeg{DistanceM: out.DistanceM, DurationSec: out.DurationSec}, nil
}

// wait blocks until at least MinCallInterval has elapsed since the last
// call sharing this key, or ctx is canceled.
func (c *Client) wait(ctx context.Context, key string) error {
	c.mu.Lock()
	last, ok := c.lastCall[key]
	c.mu.Unlock()

	if ok {
		if elapsed := time.Since(last); elapsed < MinCallInterval {
			select {
			case <-time.After(MinCallInterval - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	c.mu.Lock()
	c.lastCall[key] = time.Now()
	c.mu.Unlock()
	return nil
}
