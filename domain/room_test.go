package domain

import (
	"testing"
	"time"
)

func TestNewRoom(t *testing.T) {
	r := NewRoom()

	if r.Term != 0 {
		t.Errorf("Term = %d, want 0", r.Term)
	}
	if r.HasLeader() {
		t.Error("new room should not have a leader")
	}
	if len(r.Connections) != 0 {
		t.Errorf("Connections length = %d, want 0", len(r.Connections))
	}
}

func TestRoom_CreateConnection(t *testing.T) {
	r := NewRoom()
	now := time.Now()

	first := r.CreateConnection(now)
	second := r.CreateConnection(now)

	if first.ID != 1 {
		t.Errorf("first id = %d, want 1", first.ID)
	}
	if second.ID != 2 {
		t.Errorf("second id = %d, want 2", second.ID)
	}
	if !first.JoinedAt.Equal(now) {
		t.Errorf("JoinedAt = %v, want %v", first.JoinedAt, now)
	}
	if got, ok := r.Connection(first.ID); !ok || got != first {
		t.Error("lookup of first connection failed")
	}
}

func TestRoom_CreateConnection_ReusesLowestFreeID(t *testing.T) {
	r := NewRoom()
	now := time.Now()

	r.CreateConnection(now) // 1
	r.CreateConnection(now) // 2
	r.CreateConnection(now) // 3
	r.DestroyConnection(2)

	if c := r.CreateConnection(now); c.ID != 2 {
		t.Errorf("id = %d, want reused 2", c.ID)
	}
}

func TestRoom_DestroyConnection_ClearsLeader(t *testing.T) {
	r := NewRoom()
	c := r.CreateConnection(time.Now())
	r.LeaderIndex = c.ID

	r.DestroyConnection(c.ID)

	if r.HasLeader() {
		t.Error("destroying the leader should leave the room leaderless")
	}
	if _, ok := r.Connection(c.ID); ok {
		t.Error("connection should be gone")
	}
}

func TestConnection_OnPing_Overwrites(t *testing.T) {
	now := time.Now()
	c := NewConnection(1, now)

	later := now.Add(time.Second)
	c.OnPing(3, true, 42, now)
	c.OnPing(5, false, 7, later)

	if c.Term != 5 {
		t.Errorf("Term = %d, want 5", c.Term)
	}
	if c.HasConnectionToLeader {
		t.Error("HasConnectionToLeader = true, want false")
	}
	if c.Knowledge != 7 {
		t.Errorf("Knowledge = %d, want 7", c.Knowledge)
	}
	if !c.LastPingAt.Equal(later) {
		t.Errorf("LastPingAt = %v, want %v", c.LastPingAt, later)
	}
}
