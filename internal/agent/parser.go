package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// CompletionService is the outbound boundary to the text-generation provider.
// Messages use the OpenAI-compatible role/content shape.
type CompletionService interface {
	Complete(ctx context.Context, messages []map[string]string) (string, error)
}

// Parser extracts a classified intent from free-text user input. A nil
// completion service is the explicit "unconfigured" state; Parse degrades to
// an ERROR intent instead of failing.
type Parser struct {
	completions CompletionService
}

func NewParser(completions CompletionService) *Parser {
	return &Parser{completions: completions}
}

const (
	replyServiceUnavailable = "AI service unavailable."
	replyNoUserMessage      = "No user message to process."
)

// First well-formed fence pair wins, opening fence optionally tagged
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Parse classifies the latest user utterance. It never returns an error:
// transport failures, malformed model output and empty input are all
// downgraded to ERROR-kind intents so the turn still completes.
func (p *Parser) Parse(ctx context.Context, userText string) ParsedIntent {
	if p.completions == nil {
		return errorIntent(replyServiceUnavailable, "CompletionClientNotConfigured")
	}
	if strings.TrimSpace(userText) == "" {
		return errorIntent(replyNoUserMessage, "EmptyUserMessage")
	}

	messages := []map[string]string{
		{"role": "system", "content": SystemInstruction},
		{"role": "user", "content": userText},
	}
	raw, err := p.completions.Complete(ctx, messages)
	if err != nil {
		log.Printf("[Parser] completion call failed: %v", err)
		detail := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			detail = "CompletionTimeout"
		}
		return errorIntent(fmt.Sprintf("Error communicating with AI: %v", err), detail)
	}

	cleaned := CleanModelOutput(raw)

	var wire struct {
		ConversationalReply string                 `json:"conversational_reply"`
		ActionDetails       map[string]interface{} `json:"action_details"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		log.Printf("[Parser] bad structured output: %v", err)
		// Surface whatever the model said so nothing is silently dropped
		return ParsedIntent{
			Reply:   cleaned,
			Kind:    ActionError,
			Payload: map[string]interface{}{"detail": "BadStructuredOutput"},
		}
	}

	reply := wire.ConversationalReply
	if reply == "" {
		reply = DefaultReply
	}
	payload := wire.ActionDetails
	if payload == nil {
		payload = map[string]interface{}{}
	}
	kind := ActionUnknown
	if t, ok := payload["type"].(string); ok && t != "" {
		kind = ActionKind(t)
	}

	return ParsedIntent{Reply: reply, Kind: kind, Payload: payload}
}

// CleanModelOutput strips markdown fencing from raw model text. The ladder is
// deliberate: first well-formed fenced block, else whole-text trim, else strip
// exactly one layer of surrounding triple backticks.
func CleanModelOutput(raw string) string {
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	s := strings.TrimSpace(raw)
	if len(s) >= 6 && strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[3 : len(s)-3])
	}
	return s
}

func errorIntent(reply, detail string) ParsedIntent {
	return ParsedIntent{
		Reply:   reply,
		Kind:    ActionError,
		Payload: map[string]interface{}{"type": string(ActionError), "detail": detail},
	}
}
