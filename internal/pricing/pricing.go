// Package pricing supplies best-effort market valuations. Every consumer
// must tolerate a missing price; a lookup miss, timeout, or decode failure
// only omits the value, it never propagates an error into a tick.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Static is a fixed price table, for tests and offline runs.
type Static map[int]int64

func (s Static) PriceOf(itemID int) (int64, bool) {
	p, ok := s[itemID]
	return p, ok
}

// Client polls a wiki-style latest-prices endpoint and serves lookups from
// a TTL cache. The refresh happens inline on the first stale lookup but
// off the caller's critical path is preferred: call Refresh from the
// storage worker or driver, not from a phase.
type Client struct {
	endpoint string
	ttl      time.Duration
	http     *http.Client
	log      *log.Logger

	mu        sync.RWMutex
	prices    map[int]int64
	fetchedAt time.Time
}

func NewClient(endpoint string, timeout, ttl time.Duration, logger *log.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		ttl:      ttl,
		http:     &http.Client{Timeout: timeout},
		log:      logger,
		prices:   map[int]int64{},
	}
}

// PriceOf serves from cache only. The cache may be empty or stale when the
// endpoint is unreachable; that is a miss, not an error.
func (c *Client) PriceOf(itemID int) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[itemID]
	return p, ok
}

// Stale reports whether the cache is due a refresh.
func (c *Client) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Since(c.fetchedAt) >= c.ttl
}

type latestResponse struct {
	Data map[string]struct {
		High int64 `json:"high"`
		Low  int64 `json:"low"`
	} `json:"data"`
}

// Refresh fetches the full latest-price table. Failures leave the previous
// cache in place.
func (c *Client) Refresh(ctx context.Context) error {
	if c.endpoint == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.Printf("price refresh failed: %v", err)
		}
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price endpoint: %s", resp.Status)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("price decode: %w", err)
	}

	next := make(map[int]int64, len(body.Data))
	for idStr, entry := range body.Data {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		// Midpoint of the spread; either side may be zero when one-sided.
		switch {
		case entry.High > 0 && entry.Low > 0:
			next[id] = (entry.High + entry.Low) / 2
		case entry.High > 0:
			next[id] = entry.High
		case entry.Low > 0:
			next[id] = entry.Low
		}
	}

	c.mu.Lock()
	c.prices = next
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return nil
}
