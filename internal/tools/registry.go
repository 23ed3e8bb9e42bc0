// internal/tools/registry.go
package tools

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Capability lookups are interactive; anything slower than this is useless
// mid-conversation.
const defaultExecTimeout = 5 * time.Second

// Registry manages all available tools
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.tools[name] = tool
	log.Printf("[ToolRegistry] Registered tool: %s - %s", name, tool.Description())
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	return tool, nil
}

// Execute runs a tool with the given parameters under the registry timeout
func (r *Registry) Execute(ctx context.Context, toolName string, params map[string]interface{}) (*ToolResult, error) {
	tool, err := r.Get(toolName)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, defaultExecTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := tool.Execute(timeoutCtx, params)
	duration := time.Since(startTime)

	if err != nil {
		log.Printf("[ToolRegistry] Tool '%s' failed after %s: %v", toolName, duration, err)
		return &ToolResult{
			Success:  false,
			Error:    err.Error(),
			Duration: duration,
		}, err
	}

	result.Duration = duration
	log.Printf("[ToolRegistry] Tool '%s' completed in %s", toolName, duration)

	return result, nil
}

// List returns all registered tool names and descriptions
func (r *Registry) List() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make(map[string]string)
	for name, tool := range r.tools {
		list[name] = tool.Description()
	}
	return list
}
