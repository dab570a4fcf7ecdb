package quota

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long a cached usage response stays fresh
const DefaultTTL = 30 * time.Second

// DefaultCachePath returns the shared cache file location. Concurrent
// renderer invocations race on this file without locking; writes are
// whole-file overwrites of advisory data, so a stale read is acceptable.
func DefaultCachePath() string {
	return filepath.Join(os.TempDir(), "facet-usage.json")
}

// IsStale reports whether the cache file is missing or older than ttl
func IsStale(path string, now time.Time, ttl time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return now.Sub(info.ModTime()) > ttl
}

// Read parses the cache file. A missing or malformed file is an error,
// which callers treat as a cache miss.
func Read(path string) (*Usage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var usage Usage
	if err := json.Unmarshal(data, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

// Write overwrites the cache file with the raw response body
func Write(path string, body []byte) error {
	return os.WriteFile(path, body, 0644)
}
