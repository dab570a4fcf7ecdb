// Package hooks tracks session idle state through marker files. Claude Code
// invokes `facet hook busy` when a prompt is submitted and `facet hook idle`
// when the response finishes; the quota segment only hits the network while
// the session is idle.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
)

// Input is the JSON payload Claude Code sends to hook commands
type Input struct {
	SessionID string `json:"session_id"`
}

// MarkIdle records that the session finished responding
func MarkIdle(dir, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return os.WriteFile(markerPath(dir, sessionID), []byte{}, 0644)
}

// MarkBusy records that the user submitted a prompt
func MarkBusy(dir, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	os.Remove(markerPath(dir, sessionID))
	return nil
}

// ClearSession removes the marker when the session ends
func ClearSession(dir, sessionID string) error {
	return MarkBusy(dir, sessionID)
}

// IsIdle reports whether the session is idle. When no marker files exist at
// all the hooks are not installed, so the renderer assumes idle rather than
// permanently suppressing the quota fetch.
func IsIdle(dir, sessionID string) bool {
	if _, err := os.Stat(markerPath(dir, sessionID)); err == nil {
		return true
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "facet-idle-*"))
	return len(matches) == 0
}

func markerPath(dir, sessionID string) string {
	return filepath.Join(dir, fmt.Sprintf("facet-idle-%s", sessionID))
}
