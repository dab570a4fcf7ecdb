package quota

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the Claude usage reporting endpoint
	DefaultURL = "https://api.anthropic.com/api/oauth/usage"

	fetchTimeout = 3 * time.Second
)

// Usage is the response from the usage endpoint
type Usage struct {
	FiveHour     *Window `json:"five_hour"`
	SevenDay     *Window `json:"seven_day"`
	SevenDayOpus *Window `json:"seven_day_opus"`
}

// Window is a single rolling limit with utilization and reset time
type Window struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    string  `json:"resets_at"`
}

// Fetch calls the usage endpoint and returns the raw body alongside the
// parsed response. The raw body is what gets written to the cache file.
func Fetch(ctx context.Context, url, token string) ([]byte, *Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-beta", "oauth-2025-04-20")

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch usage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("usage API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read usage response: %w", err)
	}

	var usage Usage
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, nil, fmt.Errorf("failed to parse usage response: %w", err)
	}

	return body, &usage, nil
}

// ResolveConfig carries everything Resolve needs. The cache path is explicit
// rather than a process-wide default so tests and config can redirect it.
type ResolveConfig struct {
	URL             string
	CachePath       string
	CredentialsPath string
	TTL             time.Duration
	AllowFetch      bool
	Log             *zap.Logger
}

// Resolve returns the usage to display, refreshing the on-disk cache when it
// is stale. Every failure falls through to whatever is readable on disk;
// nil means the segment has no data and renders as a zero bar.
func Resolve(ctx context.Context, cfg ResolveConfig, now time.Time) *Usage {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if !IsStale(cfg.CachePath, now, ttl) {
		if usage, err := Read(cfg.CachePath); err == nil {
			return usage
		}
		// Torn or malformed write, treat as a miss
	}

	if cfg.AllowFetch {
		if usage := fetchAndCache(ctx, url, cfg.CachePath, cfg.CredentialsPath, log); usage != nil {
			return usage
		}
	}

	// Stale data beats no data
	usage, err := Read(cfg.CachePath)
	if err != nil {
		log.Debug("no usable quota cache", zap.String("path", cfg.CachePath), zap.Error(err))
		return nil
	}
	return usage
}

func fetchAndCache(ctx context.Context, url, cachePath, credPath string, log *zap.Logger) *Usage {
	token, err := Token(credPath)
	if err != nil {
		log.Debug("no credentials for quota fetch", zap.Error(err))
		return nil
	}

	body, usage, err := Fetch(ctx, url, token)
	if err != nil {
		log.Debug("quota fetch failed", zap.Error(err))
		return nil
	}

	if err := Write(cachePath, body); err != nil {
		log.Debug("quota cache write failed", zap.String("path", cachePath), zap.Error(err))
	}

	return usage
}
