package quota

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// StoredCredentials is the structure Claude Code keeps in the macOS
// Keychain and in ~/.claude/.credentials.json on Linux
type StoredCredentials struct {
	ClaudeAIOAuth *OAuthCredentials `json:"claudeAiOauth"`
}

// OAuthCredentials holds the OAuth token data
type OAuthCredentials struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresAt    int64    `json:"expiresAt"`
	Scopes       []string `json:"scopes"`
}

// Token retrieves the OAuth access token. When credPath is non-empty it is
// read as a credentials file directly; otherwise the platform default store
// is used (Keychain on macOS, ~/.claude/.credentials.json on Linux).
func Token(credPath string) (string, error) {
	if credPath != "" {
		return tokenFromFile(credPath)
	}

	switch runtime.GOOS {
	case "darwin":
		return tokenFromKeychain()
	case "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return tokenFromFile(filepath.Join(homeDir, ".claude", ".credentials.json"))
	default:
		return "", fmt.Errorf("token retrieval not supported on %s", runtime.GOOS)
	}
}

// tokenFromKeychain reads the token via the macOS security CLI. The short
// timeout avoids blocking the status line if Keychain prompts for
// interaction.
func tokenFromKeychain() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "security", "find-generic-password", "-s", "Claude Code-credentials", "-w")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to retrieve token from keychain: %w", err)
	}

	return parseCredentials(out.Bytes())
}

func tokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}
	return parseCredentials(data)
}

func parseCredentials(data []byte) (string, error) {
	var creds StoredCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to parse credentials: %w", err)
	}

	if creds.ClaudeAIOAuth == nil || creds.ClaudeAIOAuth.AccessToken == "" {
		return "", fmt.Errorf("no OAuth token found in credentials")
	}

	return creds.ClaudeAIOAuth.AccessToken, nil
}
