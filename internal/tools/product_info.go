package tools

import (
	"context"
	"fmt"
	"log"
)

// ProductInfoTool answers questions about a product. It clarifies the product
// first, then the aspect being asked about; only with both does it answer.
type ProductInfoTool struct{}

func NewProductInfoTool() *ProductInfoTool {
	return &ProductInfoTool{}
}

func (t *ProductInfoTool) Name() string {
	return ToolNameProductInfo
}

func (t *ProductInfoTool) Description() string {
	return "Answers product questions (dosage, side effects, efficacy data)."
}

func (t *ProductInfoTool) Execute(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
	productName, _ := params["product_name"].(string)
	queryDetails, _ := params["query_details"].(string)
	log.Printf("[ProductInfo] query for: %q, details: %q", productName, queryDetails)

	if productName == "" {
		return &ToolResult{
			Success: true,
			Output:  "Which product are you asking about?",
		}, nil
	}
	if queryDetails == "" {
		return &ToolResult{
			Success: true,
			Output:  fmt.Sprintf("What specifically about %s would you like to know (e.g., dosage, side effects, efficacy data)?", productName),
		}, nil
	}
	return &ToolResult{
		Success: true,
		Output: fmt.Sprintf("Simulated info for %s regarding '%s': Standard dose is 10mg daily. "+
			"Clinical trials show 75%% efficacy in target population. Common side effects include mild nausea.", productName, queryDetails),
	}, nil
}
