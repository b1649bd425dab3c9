package server

import "strings"

// IdleReason is a bitmask of which activity directions went idle.
type IdleReason uint8

const (
	IdleNone     IdleReason = 0
	IdleDisabled IdleReason = 1 << 0
	IdleRead     IdleReason = 1 << 1
	IdleWrite    IdleReason = 1 << 2
)

func (r IdleReason) String() string {
	if r == IdleNone {
		return "not idle"
	}
	if r&IdleDisabled != 0 {
		return "idle detection disabled"
	}
	var parts []string
	if r&IdleRead != 0 {
		parts = append(parts, "read idle")
	}
	if r&IdleWrite != 0 {
		parts = append(parts, "write idle")
	}
	return strings.Join(parts, ", ")
}
