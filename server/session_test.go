package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IdleDisabled(t *testing.T) {
	s := NewSession()

	idle, reason := s.IsIdle(0)

	assert.False(t, idle)
	assert.Equal(t, IdleDisabled, reason)
}

func TestSession_IdleAfterSilence(t *testing.T) {
	s := NewSession()
	s.lastRead.Store(time.Now().Add(-time.Minute).UnixNano())
	s.lastWrite.Store(time.Now().Add(-time.Minute).UnixNano())

	idle, reason := s.IsIdle(30 * time.Second)

	assert.True(t, idle)
	assert.Equal(t, IdleRead|IdleWrite, reason)
	assert.Equal(t, "read idle, write idle", reason.String())
}

func TestSession_TouchClearsIdle(t *testing.T) {
	s := NewSession()
	s.lastRead.Store(time.Now().Add(-time.Minute).UnixNano())

	s.TouchRead()

	idle, _ := s.IsIdle(30 * time.Second)
	assert.False(t, idle)
}

func TestSession_CloseOnce(t *testing.T) {
	s := NewSession()

	assert.True(t, s.Close())
	assert.False(t, s.Close())
	assert.True(t, s.IsClosed())
}

func TestSession_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewSession().ID(), NewSession().ID())
}
