// Package gitinfo reads repository state for the dir segment. Every query
// shells out to the git CLI; any failure means the caller omits the branch
// suffix rather than surfacing an error.
package gitinfo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Describe returns the branch name with dirty markers and upstream drift,
// or "" when dir is not a repository (or git itself is unavailable).
func Describe(ctx context.Context, dir string) string {
	if dir == "" {
		return ""
	}

	if !isRepo(ctx, dir) {
		return ""
	}

	branch := Branch(ctx, dir)
	if branch == "" {
		return ""
	}

	var result strings.Builder
	result.WriteString(branch)
	result.WriteString(dirtyMarkers(ctx, dir))

	behind, ahead := upstreamStatus(ctx, dir)
	if behind > 0 {
		result.WriteString(fmt.Sprintf(" ⇣%d", behind))
	}
	if ahead > 0 {
		result.WriteString(fmt.Sprintf(" ⇡%d", ahead))
	}

	return result.String()
}

func isRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// Branch returns the current branch name, the short commit hash when HEAD
// is detached, or "" on any failure.
func Branch(ctx context.Context, dir string) string {
	if dir == "" {
		return ""
	}

	cmd := exec.CommandContext(ctx, "git", "branch", "--show-current")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return ""
	}

	branch := strings.TrimSpace(out.String())
	if branch != "" {
		return branch
	}

	// Detached HEAD - get short commit
	cmd = exec.CommandContext(ctx, "git", "rev-parse", "--short", "HEAD")
	cmd.Dir = dir
	out.Reset()
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return ""
	}

	return strings.TrimSpace(out.String())
}

func dirtyMarkers(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return ""
	}

	output := out.String()
	if output == "" {
		return ""
	}

	hasStaged := false
	hasUnstaged := false
	hasUntracked := false

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if len(line) < 2 {
			continue
		}

		index := line[0]
		worktree := line[1]

		if index != ' ' && index != '?' {
			hasStaged = true
		}
		if worktree != ' ' && worktree != '?' {
			hasUnstaged = true
		}
		if index == '?' {
			hasUntracked = true
		}
	}

	var dirty strings.Builder
	if hasStaged {
		dirty.WriteString("*")
	}
	if hasUnstaged {
		dirty.WriteString("*")
	}
	if hasUntracked {
		dirty.WriteString("+")
	}

	return dirty.String()
}

func upstreamStatus(ctx context.Context, dir string) (behind, ahead int) {
	cmd := exec.CommandContext(ctx, "git", "rev-list", "--count", "HEAD..@{upstream}")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out

	if cmd.Run() == nil {
		behind, _ = strconv.Atoi(strings.TrimSpace(out.String()))
	}

	cmd = exec.CommandContext(ctx, "git", "rev-list", "--count", "@{upstream}..HEAD")
	cmd.Dir = dir
	out.Reset()
	cmd.Stdout = &out

	if cmd.Run() == nil {
		ahead, _ = strconv.Atoi(strings.TrimSpace(out.String()))
	}

	return behind, ahead
}
