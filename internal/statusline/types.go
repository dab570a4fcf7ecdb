package statusline

// Event is the JSON structure received from Claude Code on stdin
type Event struct {
	SessionID string        `json:"session_id"`
	Model     ModelInfo     `json:"model"`
	Workspace WorkspaceInfo `json:"workspace"`
	Cost      CostInfo      `json:"cost"`
	Context   ContextInfo   `json:"context_window"`
}

// ModelInfo contains model information
type ModelInfo struct {
	DisplayName string `json:"display_name"`
}

// WorkspaceInfo contains workspace paths
type WorkspaceInfo struct {
	ProjectDir string `json:"project_dir"`
	CurrentDir string `json:"current_dir"`
}

// CostInfo contains session cost counters
type CostInfo struct {
	TotalCostUSD    float64 `json:"total_cost_usd"`
	TotalDurationMS int64   `json:"total_duration_ms"`
}

// ContextInfo contains context window usage. UsedPercentage is a pointer
// because the field is absent at session start, which renders differently
// from an explicit zero.
type ContextInfo struct {
	UsedPercentage *float64 `json:"used_percentage"`
}
