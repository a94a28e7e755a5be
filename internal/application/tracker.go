package application

import "sync"

// Ticket identifies one detail request issued through a Tracker.
type Ticket struct {
	Ref        string
	generation uint64
}

// Tracker discards responses that arrive after a newer request was issued.
// Every Begin supersedes all earlier tickets.
type Tracker struct {
	mu         sync.Mutex
	generation uint64
	ref        string
}

func (t *Tracker) Begin(ref string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	t.ref = ref
	return Ticket{Ref: ref, generation: t.generation}
}

// Accept reports whether ticket is still the latest request.
func (t *Tracker) Accept(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return ticket.generation == t.generation
}

func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ref
}
