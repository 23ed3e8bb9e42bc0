package agent

import (
	"context"
	"fmt"
	"log"

	"hcp-crm/internal/tools"
)

// Router sequences one conversational turn: parse, route to at most one
// handler, synthesize the reply, append the assistant turn. The pipeline is
// sequential because each stage's output gates the next.
type Router struct {
	parser   *Parser
	registry *tools.Registry
}

func NewRouter(parser *Parser, registry *tools.Registry) *Router {
	return &Router{parser: parser, registry: registry}
}

// toolFor is the capability dispatch table. Every capability ActionKind must
// have an entry; a miss is a programming error and the only failure
// ProcessTurn propagates.
var toolFor = map[ActionKind]string{
	ActionRetrieveProfile: tools.ToolNameHCPProfile,
	ActionSuggestNext:     tools.ToolNameNextAction,
	ActionQueryProduct:    tools.ToolNameProductInfo,
}

// ProcessTurn runs one full turn against the session's transcript and record.
// The transcript gains the user turn immediately and exactly one assistant
// turn on completion. The returned record is a new snapshot; the input record
// is never mutated.
func (r *Router) ProcessTurn(ctx context.Context, transcript *Transcript, record WorkingRecord, userText string) (*TurnResult, error) {
	transcript.Append(Turn{Role: RoleUser, Text: userText})

	intent := r.parser.Parse(ctx, userText)

	state := StateRoutedToFallback
	finalKind := string(intent.Kind)
	updated := record
	var toolOutput string

	switch intent.Kind {
	case ActionRetrieveProfile, ActionSuggestNext, ActionQueryProduct:
		state = StateRoutedToCapability
		name, ok := toolFor[intent.Kind]
		if !ok {
			return nil, fmt.Errorf("no dispatch entry for action kind %s", intent.Kind)
		}
		result, err := r.registry.Execute(ctx, name, intent.Payload)
		if err != nil {
			if result == nil {
				// Tool missing from the registry: misconfiguration, not a turn failure
				return nil, fmt.Errorf("routing %s: %w", intent.Kind, err)
			}
			// Tool ran and failed; fall back to the parser's reply
			log.Printf("[Router] capability %s degraded: %s", name, result.Error)
		} else {
			toolOutput = result.Output
			finalKind = string(intent.Kind) + ExecutedSuffix
		}
	case ActionExtractInfo:
		state = StateRoutedToMerge
		updated = ApplyExtract(record, intent.Payload)
	case ActionEditField:
		state = StateRoutedToMerge
		updated = ApplyEdit(record, intent.Payload)
	default:
		// ERROR, UNKNOWN, GENERAL_QUERY, NEED_MORE_INFO: straight to reply
		state = StateRoutedToFallback
	}
	log.Printf("[Router] %s -> %s (action=%s)", StateParsed, state, intent.Kind)

	// Tool output supersedes the conversational reply when a capability ran
	reply := toolOutput
	if reply == "" {
		reply = intent.Reply
	}
	if reply == "" {
		reply = DefaultReply
	}

	transcript.Append(Turn{Role: RoleAssistant, Text: reply})

	return &TurnResult{
		Reply:      reply,
		Record:     updated,
		ActionKind: finalKind,
		ToolOutput: toolOutput,
	}, nil
}
