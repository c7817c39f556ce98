package tui

import (
	"testing"
	"time"
)

func TestStatusManager(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sm := NewStatusManager()
	sm.now = func() time.Time { return now }

	if _, _, ok := sm.GetStatus(); ok {
		t.Fatal("new manager should have no status")
	}

	sm.SetPersistentMessage("AI is offline", StatusTypeWarning)
	if msg, typ, ok := sm.GetStatus(); !ok || msg != "⚠ AI is offline" || typ != StatusTypeWarning {
		t.Errorf("persistent status = %q %v %v", msg, typ, ok)
	}

	if cmd := sm.ShowSuccess("Saved"); cmd == nil {
		t.Error("ShowSuccess should schedule a clear")
	}
	if msg, typ, _ := sm.GetStatus(); msg != "✓ Saved" || typ != StatusTypeSuccess {
		t.Errorf("temporary status should win, got %q", msg)
	}

	// A clear that arrives early keeps the message.
	sm.Clear()
	if !sm.IsActive() {
		t.Error("status cleared before it expired")
	}

	now = now.Add(sm.DefaultDuration + time.Millisecond)
	sm.Clear()
	if msg, _, _ := sm.GetStatus(); msg != "⚠ AI is offline" {
		t.Errorf("expected persistent message after expiry, got %q", msg)
	}

	sm.ClearPersistentMessage()
	if _, _, ok := sm.GetStatus(); ok {
		t.Error("expected no status")
	}
}
