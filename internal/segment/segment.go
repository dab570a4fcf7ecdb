// Package segment runs external segment scripts. Any executable in the
// segments directory is addressable as a section by file name; it receives
// a JSON context on stdin and its stdout becomes the segment text.
package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ExecTimeout bounds a single script run so a hung script cannot stall the
// status line refresh
const ExecTimeout = 500 * time.Millisecond

// Context is the JSON structure sent to segment scripts via stdin
type Context struct {
	Version    string `json:"version"`
	SessionID  string `json:"session_id"`
	ProjectDir string `json:"project_dir"`
	CurrentDir string `json:"current_dir"`
	IsIdle     bool   `json:"is_idle"`
}

// Segment is a discovered segment script
type Segment struct {
	Name string
	Path string
}

// Discover finds all executable segment scripts in dir
func Discover(dir string) ([]Segment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var segments []Segment
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}

		name := entry.Name()
		name = strings.TrimSuffix(name, filepath.Ext(name))

		segments = append(segments, Segment{
			Name: name,
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	return segments, nil
}

// Run executes the script with the given context and returns its trimmed
// stdout
func (s Segment) Run(ctx context.Context, in Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ExecTimeout)
	defer cancel()

	inputJSON, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to marshal segment input: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.Path)
	cmd.Stdin = bytes.NewReader(inputJSON)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("segment %s timed out", s.Name)
		}
		return "", fmt.Errorf("segment %s failed: %w", s.Name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
