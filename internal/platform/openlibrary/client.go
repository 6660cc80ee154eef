// Package openlibrary is the secondary metadata provider: free-text subject
// tags for an ISBN. It is consulted best-effort; callers degrade any failure
// to an empty subject list.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(userAgent string, rps int, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent:  userAgent,
		baseURL:    "https://openlibrary.org",
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

// editionResponse matches /isbn/{isbn}.json
type editionResponse struct {
	Works []struct {
		Key string `json:"key"`
	} `json:"works"`
}

// workResponse matches /works/{key}.json
type workResponse struct {
	Subjects []string `json:"subjects"`
}

// Subjects resolves an ISBN to the subject tags of its first linked work.
// An edition with no linked work yields an empty list, not an error.
func (c *Client) Subjects(ctx context.Context, isbn string) ([]string, error) {
	var edition editionResponse
	if err := c.get(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn), &edition); err != nil {
		return nil, err
	}
	if len(edition.Works) == 0 {
		return nil, nil
	}

	// Work keys come back as "/works/OL...W".
	var work workResponse
	if err := c.get(ctx, c.baseURL+edition.Works[0].Key+".json", &work); err != nil {
		return nil, err
	}
	return work.Subjects, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
