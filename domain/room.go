package domain

import "time"

// Term is the monotonically increasing election epoch shared by all peers in
// a room. Its wire width is 16 bits.
type Term uint16

// ConnectionID addresses one peer connection inside a room. The zero value is
// reserved as the "none" sentinel (used for LeaderIndex when there is no
// leader); real ids are allocated from 1.
type ConnectionID uint8

// NoConnection is the ConnectionID sentinel meaning "no connection".
const NoConnection ConnectionID = 0

// MaxConnections is the highest number of connections a room can hold, bounded
// by the one-byte id space minus the sentinel.
const MaxConnections = 255

// Room is the in-memory model of one coordination group: the current election
// term, the current leader (if any) and the attached peer connections.
// A Room is exclusively owned by the service hosting it; all access must be
// serialized by the owner, the model itself does no locking.
type Room struct {
	Term        Term
	LeaderIndex ConnectionID
	Connections map[ConnectionID]*Connection
}

// NewRoom creates an empty room at term 0 with no leader.
func NewRoom() *Room {
	return &Room{
		LeaderIndex: NoConnection,
		Connections: make(map[ConnectionID]*Connection),
	}
}

// HasLeader reports whether the room currently has an elected leader.
func (r *Room) HasLeader() bool {
	return r.LeaderIndex != NoConnection
}

// Connection looks up a connection by id.
func (r *Room) Connection(id ConnectionID) (*Connection, bool) {
	c, ok := r.Connections[id]
	return c, ok
}

// CreateConnection attaches a new peer and returns its connection. The lowest
// free id is reused so the one-byte id space does not leak under churn.
// Returns nil when the room is full.
func (r *Room) CreateConnection(now time.Time) *Connection {
	for id := ConnectionID(1); ; id++ {
		if _, taken := r.Connections[id]; !taken {
			c := NewConnection(id, now)
			r.Connections[id] = c
			return c
		}
		if id == MaxConnections {
			return nil
		}
	}
}

// DestroyConnection detaches a peer. Destroying the leader leaves the room
// without one until the next election.
func (r *Room) DestroyConnection(id ConnectionID) {
	delete(r.Connections, id)
	if r.LeaderIndex == id {
		r.LeaderIndex = NoConnection
	}
}
