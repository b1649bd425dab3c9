package domain

import "time"

// Connection is the per-peer state a room tracks: what the peer last reported
// about its view of the room, and when it last reported it.
type Connection struct {
	ID ConnectionID

	// Knowledge is an opaque 64-bit fingerprint the peer asserts about room
	// history; the election logic compares it to reason about divergence.
	Knowledge uint64

	// HasConnectionToLeader reports whether the peer currently has a path to
	// the leader.
	HasConnectionToLeader bool

	// Term is the election epoch the peer last reported.
	Term Term

	JoinedAt   time.Time
	LastPingAt time.Time
}

// NewConnection creates a connection attached at now.
func NewConnection(id ConnectionID, now time.Time) *Connection {
	return &Connection{
		ID:         id,
		JoinedAt:   now,
		LastPingAt: now,
	}
}

// OnPing records what the peer reported. Every field is a plain overwrite,
// last write wins; now stamps liveness.
func (c *Connection) OnPing(term Term, hasConnectionToLeader bool, knowledge uint64, now time.Time) {
	c.Term = term
	c.HasConnectionToLeader = hasConnectionToLeader
	c.Knowledge = knowledge
	c.LastPingAt = now
}
