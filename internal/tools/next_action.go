package tools

import (
	"context"
	"fmt"
	"log"
)

// NextActionTool suggests a next best action for the rep. All parameters are
// optional; this tool never asks a clarifying question.
type NextActionTool struct{}

func NewNextActionTool() *NextActionTool {
	return &NextActionTool{}
}

func (t *NextActionTool) Name() string {
	return ToolNameNextAction
}

func (t *NextActionTool) Description() string {
	return "Suggests a next best action, optionally in the context of an HCP."
}

var suggestions = []string{
	"Schedule a follow-up meeting in 2 weeks to discuss trial results.",
	"Send the latest OncoBoost Phase III PDF.",
	"Consider adding this HCP to the upcoming advisory board invite list.",
}

func (t *NextActionTool) Execute(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
	hcpName, _ := params["hcp_name"].(string)
	log.Printf("[NextAction] suggestion requested (context HCP: %q)", hcpName)

	if hcpName != "" {
		return &ToolResult{
			Success: true,
			Output:  fmt.Sprintf("For %s, consider: %s", hcpName, suggestions[0]),
		}, nil
	}
	return &ToolResult{
		Success: true,
		Output:  fmt.Sprintf("Here are some general next best actions: %s", suggestions[1]),
	}, nil
}
