// Package generation discards results of superseded fetches.
//
// Every fetch takes a Ticket before it starts. When the fetch completes it may
// only commit its result if no newer ticket was issued in the meantime. The
// in-flight request itself is never cancelled.
package generation

import "sync"

type Ticket uint64

type Gate struct {
	mu      sync.Mutex
	current uint64
}

// Begin issues a ticket newer than all previously issued ones.
func (g *Gate) Begin() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return Ticket(g.current)
}

// IsLatest reports whether t is still the newest ticket.
func (g *Gate) IsLatest(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(t) == g.current
}

// Commit runs apply while holding the gate, but only if t is the newest
// ticket. It reports whether apply ran.
func (g *Gate) Commit(t Ticket, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if uint64(t) != g.current {
		return false
	}
	apply()
	return true
}
