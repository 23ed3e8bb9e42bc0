package tools

import (
	"context"
	"time"
)

// Tool defines the interface that all capabilities must implement. A tool is
// a read-only lookup: it may call out to external data sources but never
// touches the agent's own state.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what the tool does
	Description() string

	// Execute runs the tool with the given parameters. Missing optional
	// parameters produce clarifying output, not errors.
	Execute(ctx context.Context, params map[string]interface{}) (*ToolResult, error)
}

// ToolResult contains the outcome of a tool execution
type ToolResult struct {
	Success  bool                   `json:"success"`
	Output   string                 `json:"output"`
	Error    string                 `json:"error,omitempty"`
	Duration time.Duration          `json:"duration"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Tool name constants (must match the router's dispatch table)
const (
	ToolNameHCPProfile  = "hcp_profile"
	ToolNameNextAction  = "next_action"
	ToolNameProductInfo = "product_info"
)
