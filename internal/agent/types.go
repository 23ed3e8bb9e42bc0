package agent

import "sync"

// Role identifies the author of a transcript turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message exchange unit. Immutable once appended.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is the append-only ordered turn sequence for one session.
// Ordering is turn order and forms the conversational context window.
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// Append adds a turn. Never fails.
func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Latest returns the most recent turn of the given role.
func (t *Transcript) Latest(role Role) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.turns) - 1; i >= 0; i-- {
		if t.turns[i].Role == role {
			return t.turns[i], true
		}
	}
	return Turn{}, false
}

// Len returns the number of turns
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Turns returns a copy of the turn sequence
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// WorkingRecord accumulates structured interaction-log fields across turns.
// Keys are overwritten last-writer-wins and never removed once set.
type WorkingRecord map[string]interface{}

// Clone returns a shallow copy so prior snapshots stay untouched
func (r WorkingRecord) Clone() WorkingRecord {
	out := make(WorkingRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ActionKind classifies the intent of a user turn (wire values from the LLM)
type ActionKind string

const (
	ActionExtractInfo     ActionKind = "EXTRACT_INFO"
	ActionEditField       ActionKind = "EDIT_FIELD"
	ActionRetrieveProfile ActionKind = "RETRIEVE_HCP_PROFILE"
	ActionSuggestNext     ActionKind = "SUGGEST_NEXT_ACTION"
	ActionQueryProduct    ActionKind = "QUERY_PRODUCT_INFO"
	ActionGeneralQuery    ActionKind = "GENERAL_QUERY"
	ActionNeedMoreInfo    ActionKind = "NEED_MORE_INFO"
	ActionError           ActionKind = "ERROR"
	ActionUnknown         ActionKind = "UNKNOWN_ACTION"
)

// ExecutedSuffix marks an action kind whose capability actually ran
const ExecutedSuffix = "_EXECUTED"

// ParsedIntent is the structured result of one parser call. Produced fresh
// each turn and consumed once by the router.
type ParsedIntent struct {
	Reply   string
	Kind    ActionKind
	Payload map[string]interface{}
}

// TurnResult is what one completed turn hands back to the caller
type TurnResult struct {
	Reply      string        `json:"reply"`
	Record     WorkingRecord `json:"record"`
	ActionKind string        `json:"action_kind"`
	ToolOutput string        `json:"tool_output,omitempty"`
}

// TurnState tracks progress of the per-turn pipeline
type TurnState string

const (
	StateReceived           TurnState = "RECEIVED"
	StateParsed             TurnState = "PARSED"
	StateRoutedToCapability TurnState = "ROUTED_TO_CAPABILITY"
	StateRoutedToMerge      TurnState = "ROUTED_TO_MERGE"
	StateRoutedToFallback   TurnState = "ROUTED_TO_FALLBACK"
	StateReplied            TurnState = "REPLIED"
	StateDone               TurnState = "DONE"
)

// DefaultReply is used when neither tool output nor a conversational reply exists
const DefaultReply = "I'm not sure how to respond."
