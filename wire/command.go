package wire

import "fmt"

// PingCommandTypeID tags a Ping command datagram.
const PingCommandTypeID uint8 = 0xFF

// PingPayloadSize is the fixed size of a Ping datagram including the tag:
// tag(1) + term(2) + knowledge(8) + hasConnectionToLeader(1).
const PingPayloadSize = 12

// Command is one decoded incoming command. The concrete type is determined by
// the tag octet leading the datagram.
type Command interface {
	TypeID() uint8
}

// PingCommand is the periodic report every peer sends: the term it is on,
// whether it can reach the leader, and its knowledge fingerprint.
type PingCommand struct {
	Term                  uint16
	Knowledge             uint64
	HasConnectionToLeader bool
}

// TypeID implements Command.
func (PingCommand) TypeID() uint8 { return PingCommandTypeID }

// UnknownCommandTypeError is returned for a tag octet outside the registered
// command set: a protocol version mismatch or a corrupt datagram.
type UnknownCommandTypeError struct {
	Tag uint8
}

func (e *UnknownCommandTypeError) Error() string {
	return fmt.Sprintf("wire: unknown command type 0x%02X", e.Tag)
}

// decoders maps the tag octet to the payload decoder for that command type.
// New command types register here; ReadCommand never branches on tags itself.
var decoders = map[uint8]func(*OctetReader) (Command, error){
	PingCommandTypeID: decodePing,
}

// ReadCommand decodes exactly one command from r: one tag octet followed by
// the tag-specific fixed payload. Truncated input fails with ErrShortBuffer,
// an unregistered tag with UnknownCommandTypeError; in both cases nothing
// useful has been consumed and the datagram should be dropped.
func ReadCommand(r *OctetReader) (Command, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	decode, ok := decoders[tag]
	if !ok {
		return nil, &UnknownCommandTypeError{Tag: tag}
	}
	return decode(r)
}

func decodePing(r *OctetReader) (Command, error) {
	term, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	knowledge, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	hasConnectionToLeader, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	return &PingCommand{
		Term:                  term,
		Knowledge:             knowledge,
		HasConnectionToLeader: hasConnectionToLeader != 0,
	}, nil
}
