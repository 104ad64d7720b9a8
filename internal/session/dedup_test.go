package session

import (
	"testing"
	"time"
)

var base = time.Date(2025, 11, 10, 13, 0, 0, 0, time.UTC)

func TestFirstUtteranceAccepted(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	v := d.Check("sess-1", "ate 2 rotis", base)
	if !v.Accept {
		t.Fatal("first utterance must be accepted")
	}
}

func TestDuplicateWithinWindow(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "ate 2 rotis", base, "log-123")

	v := d.Check("sess-1", "ate 2 rotis", base.Add(30*time.Second))
	if v.Accept {
		t.Fatal("expected duplicate within window to be rejected")
	}
	if v.Reason != "duplicate" {
		t.Errorf("expected reason duplicate, got %q", v.Reason)
	}
	if v.PreviousLogID != "log-123" {
		t.Errorf("expected previous log id log-123, got %q", v.PreviousLogID)
	}
}

func TestDuplicateCheckIsCaseInsensitive(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "Ate 2 Rotis", base, "log-123")

	v := d.Check("sess-1", "ATE 2 ROTIS", base.Add(10*time.Second))
	if v.Accept {
		t.Fatal("expected case-insensitive duplicate to be rejected")
	}
}

func TestWindowResetOnElapsed(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "ate 2 rotis", base, "log-123")

	// Exactly at the boundary the window has elapsed
	v := d.Check("sess-1", "ate 2 rotis", base.Add(60*time.Second))
	if !v.Accept {
		t.Fatal("expected same text after window to be accepted")
	}

	// The window measures from the new commit, not the first one
	d.Commit("sess-1", "ate 2 rotis", base.Add(60*time.Second), "log-456")

	v = d.Check("sess-1", "ate 2 rotis", base.Add(90*time.Second))
	if v.Accept {
		t.Fatal("expected duplicate within the reset window to be rejected")
	}
	if v.PreviousLogID != "log-456" {
		t.Errorf("expected previous log id log-456, got %q", v.PreviousLogID)
	}
}

func TestDifferentTextWithinWindowAccepted(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "ate 2 rotis", base, "log-123")

	v := d.Check("sess-1", "also had dal", base.Add(5*time.Second))
	if !v.Accept {
		t.Fatal("a distinct utterance within the window is a separate meal mention")
	}
}

func TestCheckDoesNotMutateRecord(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "ate 2 rotis", base, "log-123")

	// A rejected check must leave the record unchanged
	d.Check("sess-1", "ate 2 rotis", base.Add(30*time.Second))

	v := d.Check("sess-1", "ate 2 rotis", base.Add(59*time.Second))
	if v.Accept {
		t.Fatal("window must be measured from the committed entry, not the last check")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("sess-1", "ate 2 rotis", base, "log-123")

	v := d.Check("sess-2", "ate 2 rotis", base.Add(5*time.Second))
	if !v.Accept {
		t.Fatal("duplicate suppression must be keyed by session id")
	}
}

func TestSweepEvictsStaleSessions(t *testing.T) {
	d := NewDeduplicator(DefaultWindow, DefaultTTL)

	d.Commit("old", "ate 2 rotis", base, "log-1")
	d.Commit("fresh", "had dal", base.Add(23*time.Hour), "log-2")

	dropped := d.Sweep(base.Add(25 * time.Hour))
	if dropped != 1 {
		t.Fatalf("expected 1 evicted session, got %d", dropped)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", d.Len())
	}
}
