package session

import (
	"context"
	"strings"
	"testing"

	"hcp-crm/internal/agent"
)

func TestGetOrCreate_GeneratesID(t *testing.T) {
	m := NewManager(nil)
	s := m.GetOrCreate("")
	if !strings.HasPrefix(s.ID, "session_") {
		t.Errorf("generated id should have session_ prefix, got %q", s.ID)
	}
	if s.Transcript == nil || s.Record == nil {
		t.Errorf("session not initialized: %+v", s)
	}
}

func TestGetOrCreate_ReturnsSameSession(t *testing.T) {
	m := NewManager(nil)
	a := m.GetOrCreate("abc")
	b := m.GetOrCreate("abc")
	if a != b {
		t.Errorf("expected the same session instance for one id")
	}
}

func TestSessions_Isolated(t *testing.T) {
	m := NewManager(nil)
	a := m.GetOrCreate("a")
	b := m.GetOrCreate("b")

	a.Record["hcpName"] = "Dr. Able"
	if _, ok := b.Record["hcpName"]; ok {
		t.Errorf("cross-session leakage: %+v", b.Record)
	}
	a.Transcript.Append(agent.Turn{Role: agent.RoleUser, Text: "hi"})
	if b.Transcript.Len() != 0 {
		t.Errorf("cross-session transcript leakage")
	}
}

func TestBeginTurn_RejectsOverlap(t *testing.T) {
	m := NewManager(nil)
	s := m.GetOrCreate("busy")

	if err := s.BeginTurn(); err != nil {
		t.Fatalf("first turn should acquire: %v", err)
	}
	if err := s.BeginTurn(); err != ErrSessionBusy {
		t.Errorf("expected ErrSessionBusy, got %v", err)
	}
	s.EndTurn()
	if err := s.BeginTurn(); err != nil {
		t.Errorf("turn should acquire after release: %v", err)
	}
	s.EndTurn()
}

func TestEnd_RemovesSession(t *testing.T) {
	m := NewManager(nil)
	m.GetOrCreate("gone")
	m.End(context.Background(), "gone")
	if _, ok := m.Get("gone"); ok {
		t.Errorf("session should be destroyed")
	}
}

func TestActiveSessionCount_WithoutRedis(t *testing.T) {
	m := NewManager(nil)
	m.GetOrCreate("a")
	m.GetOrCreate("b")
	count, err := m.ActiveSessionCount(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 active sessions, got %d", count)
	}
}
