package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCompletions struct {
	out   string
	err   error
	calls int
	last  []map[string]string
}

func (f *fakeCompletions) Complete(ctx context.Context, messages []map[string]string) (string, error) {
	f.calls++
	f.last = messages
	return f.out, f.err
}

func TestCleanModelOutput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"fenced with tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with prose around", "Sure!\n```json\n{\"a\":1}\n```\nHope that helps.", `{"a":1}`},
		{"first fence wins", "```json\n{\"first\":1}\n```\n```json\n{\"second\":2}\n```", `{"first":1}`},
		{"whitespace trim", "  {\"a\":1}  \n", `{"a":1}`},
		{"bare triple marks stripped once", "```{\"a\":1}```", `{"a":1}`},
		{"lone fence untouched", "```", "```"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanModelOutput(tc.in); got != tc.want {
				t.Errorf("CleanModelOutput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_ValidOutput(t *testing.T) {
	fake := &fakeCompletions{out: "```json\n" +
		`{"conversational_reply": "Got it, logging that.", "action_details": {"type": "EXTRACT_INFO", "extracted_fields": {"hcpName": "Dr. Lee"}}}` +
		"\n```"}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "Met with Dr. Lee")
	if intent.Kind != ActionExtractInfo {
		t.Fatalf("expected EXTRACT_INFO, got %s", intent.Kind)
	}
	if intent.Reply != "Got it, logging that." {
		t.Errorf("unexpected reply: %q", intent.Reply)
	}
	fields, ok := intent.Payload["extracted_fields"].(map[string]interface{})
	if !ok || fields["hcpName"] != "Dr. Lee" {
		t.Errorf("extracted_fields not carried through: %+v", intent.Payload)
	}
	if len(fake.last) != 2 || fake.last[0]["role"] != "system" || fake.last[1]["content"] != "Met with Dr. Lee" {
		t.Errorf("unexpected message payload: %+v", fake.last)
	}
}

func TestParse_MalformedOutput(t *testing.T) {
	fake := &fakeCompletions{out: "I met Dr. Lee today, thanks for asking!"}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "hello")
	if intent.Kind != ActionError {
		t.Fatalf("expected ERROR kind, got %s", intent.Kind)
	}
	// The raw cleaned text must survive so nothing is silently dropped
	if intent.Reply != "I met Dr. Lee today, thanks for asking!" {
		t.Errorf("expected raw text as reply, got %q", intent.Reply)
	}
	if intent.Payload["detail"] != "BadStructuredOutput" {
		t.Errorf("expected BadStructuredOutput detail, got %+v", intent.Payload)
	}
}

func TestParse_TransportError(t *testing.T) {
	fake := &fakeCompletions{err: errors.New("connection refused")}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "hello")
	if intent.Kind != ActionError {
		t.Fatalf("expected ERROR kind, got %s", intent.Kind)
	}
	if !strings.Contains(intent.Reply, "Error communicating with AI") {
		t.Errorf("unexpected reply: %q", intent.Reply)
	}
}

func TestParse_Timeout(t *testing.T) {
	fake := &fakeCompletions{err: context.DeadlineExceeded}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "hello")
	if intent.Kind != ActionError {
		t.Fatalf("expected ERROR kind, got %s", intent.Kind)
	}
	if intent.Payload["detail"] != "CompletionTimeout" {
		t.Errorf("expected CompletionTimeout detail, got %+v", intent.Payload)
	}
}

func TestParse_Unconfigured(t *testing.T) {
	p := NewParser(nil)

	intent := p.Parse(context.Background(), "hello")
	if intent.Kind != ActionError {
		t.Fatalf("expected ERROR kind, got %s", intent.Kind)
	}
	if intent.Reply != "AI service unavailable." {
		t.Errorf("unexpected reply: %q", intent.Reply)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	fake := &fakeCompletions{out: "{}"}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "   ")
	if intent.Kind != ActionError {
		t.Fatalf("expected ERROR kind, got %s", intent.Kind)
	}
	if fake.calls != 0 {
		t.Errorf("completion service should not be called for empty input")
	}
	if intent.Reply != "No user message to process." {
		t.Errorf("unexpected reply: %q", intent.Reply)
	}
}

func TestParse_Defaults(t *testing.T) {
	// Missing reply and missing action type fall back without failing
	fake := &fakeCompletions{out: `{"action_details": {}}`}
	p := NewParser(fake)

	intent := p.Parse(context.Background(), "hello")
	if intent.Reply != DefaultReply {
		t.Errorf("expected default reply, got %q", intent.Reply)
	}
	if intent.Kind != ActionUnknown {
		t.Errorf("expected UNKNOWN_ACTION, got %s", intent.Kind)
	}
}
