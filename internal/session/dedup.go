package session

import (
	"strings"
	"sync"
	"time"
)

// Record tracks the last accepted utterance for one session.
type Record struct {
	LastText  string
	LastSeen  time.Time
	LastLogID string
}

// Verdict is the outcome of a duplicate check.
type Verdict struct {
	Accept        bool
	Reason        string
	PreviousLogID string
}

// Deduplicator suppresses repeat logging of the same utterance within a
// short window, keyed by session id. Check never mutates state; the
// caller commits only after the sink write succeeded, so a failed write
// leaves the window exactly where it was and a retry is not treated as
// a duplicate.
type Deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	ttl      time.Duration
	sessions map[string]*Record
}

const (
	DefaultWindow = 60 * time.Second
	DefaultTTL    = 24 * time.Hour
)

func NewDeduplicator(window, ttl time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultWindow
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Deduplicator{
		window:   window,
		ttl:      ttl,
		sessions: make(map[string]*Record),
	}
}

// Check applies the window rules:
//  1. no record for the session: accept
//  2. window elapsed since the last accepted entry: accept
//  3. within window, same text (case-insensitive): duplicate
//  4. within window, different text: accept — a distinct utterance
//     seconds after a logged one is a separate meal mention
//
// The match is exact text, not semantic. Paraphrases within the window
// are accepted on purpose.
func (d *Deduplicator) Check(sessionID, text string, now time.Time) Verdict {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.sessions[sessionID]
	if !ok {
		return Verdict{Accept: true}
	}

	if now.Sub(rec.LastSeen) >= d.window {
		return Verdict{Accept: true}
	}

	if strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(rec.LastText)) {
		return Verdict{
			Accept:        false,
			Reason:        "duplicate",
			PreviousLogID: rec.LastLogID,
		}
	}

	return Verdict{Accept: true}
}

// Commit records an accepted, persisted utterance. The window resets
// from now, not from the previous entry.
func (d *Deduplicator) Commit(sessionID, text string, now time.Time, logID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sessions[sessionID] = &Record{
		LastText:  text,
		LastSeen:  now,
		LastLogID: logID,
	}
}

// Sweep evicts sessions untouched for longer than the TTL and returns
// how many were dropped. The original scripts grew this map unbounded.
func (d *Deduplicator) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	dropped := 0
	for id, rec := range d.sessions {
		if now.Sub(rec.LastSeen) > d.ttl {
			delete(d.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of tracked sessions.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}
