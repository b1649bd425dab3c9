// Package datagram is the boundary between the transport and the room model:
// it turns one incoming datagram into a typed command applied to a room
// connection, and room state into one outgoing summary datagram.
package datagram

import (
	"errors"
	"fmt"
	"time"

	"github.com/touka-aoi/room-net/domain"
	"github.com/touka-aoi/room-net/wire"
)

// UnknownConnectionError reports a datagram addressed to a connection the room
// does not know about. This is a connection-lifecycle bug in the caller, not a
// recoverable protocol condition.
type UnknownConnectionError struct {
	ID domain.ConnectionID
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("datagram: no connection %d in room", e.ID)
}

// MalformedPayloadError reports a datagram too short for its command's fixed
// layout.
type MalformedPayloadError struct {
	Cause error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("datagram: malformed payload: %v", e.Cause)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Cause }

// Send serializes the room summary broadcast to peers. It is a pure function
// of the room state; client infos are always emitted empty in this layer.
func Send(room *domain.Room) []byte {
	cmd := wire.RoomInfoCommand{
		Term:        uint16(room.Term),
		LeaderIndex: uint8(room.LeaderIndex),
	}
	return cmd.Octets()
}

// Receive decodes exactly one command from octets and applies it to the
// addressed connection, stamping liveness with now. Decoding completes
// strictly before any mutation: on error the room is untouched and the one
// datagram is simply dropped by the caller. Errors are
// *UnknownConnectionError, *wire.UnknownCommandTypeError and
// *MalformedPayloadError.
func Receive(room *domain.Room, connectionID domain.ConnectionID, now time.Time, octets []byte) error {
	conn, ok := room.Connection(connectionID)
	if !ok {
		return &UnknownConnectionError{ID: connectionID}
	}

	cmd, err := wire.ReadCommand(wire.NewOctetReader(octets))
	if err != nil {
		if errors.Is(err, wire.ErrShortBuffer) {
			return &MalformedPayloadError{Cause: err}
		}
		return err
	}

	switch c := cmd.(type) {
	case *wire.PingCommand:
		conn.OnPing(domain.Term(c.Term), c.HasConnectionToLeader, c.Knowledge, now)
	default:
		// Registered in wire but not handled here; treat like an unknown tag
		// so a half-added command type cannot be silently dropped.
		return &wire.UnknownCommandTypeError{Tag: cmd.TypeID()}
	}
	return nil
}
