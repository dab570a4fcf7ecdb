package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIdle_NoMarkersAssumesIdle(t *testing.T) {
	assert.True(t, IsIdle(t.TempDir(), "sess-1"), "hooks not installed means idle")
}

func TestIsIdle_OwnMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkIdle(dir, "sess-1"))

	assert.True(t, IsIdle(dir, "sess-1"))
}

func TestIsIdle_OtherSessionMarkerMeansBusy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkIdle(dir, "sess-other"))

	// Markers exist, so hooks are active; this session has none, so it
	// is mid-response.
	assert.False(t, IsIdle(dir, "sess-1"))
}

func TestMarkBusy_RemovesMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkIdle(dir, "sess-1"))
	require.NoError(t, MarkIdle(dir, "sess-2"))

	require.NoError(t, MarkBusy(dir, "sess-1"))

	assert.False(t, IsIdle(dir, "sess-1"))
	assert.True(t, IsIdle(dir, "sess-2"))
}

func TestMarkIdle_EmptySessionIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkIdle(dir, ""))
	assert.True(t, IsIdle(dir, "anything"))
}

func TestClearSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkIdle(dir, "sess-1"))
	require.NoError(t, ClearSession(dir, "sess-1"))

	assert.True(t, IsIdle(dir, "sess-1"), "no markers left, back to hooks-not-installed")
}
