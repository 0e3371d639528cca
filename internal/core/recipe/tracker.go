package recipe

import (
	"context"
	"sync"
)

// Tracker keeps the latest search per client session. Starting a new search cancels the
// previous one of the same session.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	sessions map[string]*inflight
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Ticket identifies one tracked search
type Ticket struct {
	tracker *Tracker
	session string
	seq     uint64
	cancel  context.CancelFunc
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*inflight)}
}

// Begin registers a search for session and returns a context cancelled when a newer search
// for the same session begins. An empty session is not tracked.
func (t *Tracker) Begin(ctx context.Context, session string) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)
	if session == "" || t == nil {
		return ctx, &Ticket{cancel: cancel}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	if prev, ok := t.sessions[session]; ok {
		prev.cancel()
	}
	t.sessions[session] = &inflight{seq: t.seq, cancel: cancel}

	return ctx, &Ticket{tracker: t, session: session, seq: t.seq, cancel: cancel}
}

// Current reports whether this ticket is still the latest search of its session
func (k *Ticket) Current() bool {
	if k.tracker == nil {
		return true
	}
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()

	cur, ok := k.tracker.sessions[k.session]
	return ok && cur.seq == k.seq
}

// Seq the sequence number issued for this ticket, zero when untracked
func (k *Ticket) Seq() uint64 {
	return k.seq
}

// Done releases the ticket and its context
func (k *Ticket) Done() {
	k.cancel()
	if k.tracker == nil {
		return
	}
	k.tracker.mu.Lock()
	defer k.tracker.mu.Unlock()

	if cur, ok := k.tracker.sessions[k.session]; ok && cur.seq == k.seq {
		delete(k.tracker.sessions, k.session)
	}
}
