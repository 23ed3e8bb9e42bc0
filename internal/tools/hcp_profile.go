package tools

import (
	"context"
	"fmt"
	"log"
)

// HCPProfileTool looks up a healthcare professional's profile summary.
// Currently backed by simulated data; the call signature is the contract.
type HCPProfileTool struct{}

func NewHCPProfileTool() *HCPProfileTool {
	return &HCPProfileTool{}
}

func (t *HCPProfileTool) Name() string {
	return ToolNameHCPProfile
}

func (t *HCPProfileTool) Description() string {
	return "Retrieves a profile summary for a named HCP."
}

func (t *HCPProfileTool) Execute(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
	hcpName, _ := params["hcp_name"].(string)
	log.Printf("[HCPProfile] lookup for: %q", hcpName)

	if hcpName == "" {
		return &ToolResult{
			Success: true,
			Output:  "To retrieve an HCP profile, please tell me the HCP's name.",
		}, nil
	}
	return &ToolResult{
		Success: true,
		Output:  fmt.Sprintf("Simulated profile for %s: Specialty - Cardiology, Institution - City General", hcpName),
	}, nil
}
