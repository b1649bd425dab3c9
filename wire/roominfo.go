package wire

import "encoding/binary"

// roomInfoTerminator closes a room-info datagram. The layout between the
// leader index and the terminator carries the client-info sequence when it is
// non-empty; that layout is not part of this core's contract and ClientInfos
// must stay empty here (Octets panics otherwise rather than guess bytes).
const roomInfoTerminator uint8 = 0xFF

// NoLeaderIndex is the leader-index octet meaning the room has no leader.
// Connection ids allocate from 1, leaving 0 free as the sentinel.
const NoLeaderIndex uint8 = 0

// ClientInfo is one per-peer entry of a room-info datagram. Population is
// future scope; only the empty sequence is encodable today.
type ClientInfo struct {
	ConnectionID uint8
	Knowledge    uint64
}

// RoomInfoCommand is the outgoing room summary broadcast to every peer:
// term(2, network order) + leaderIndex(1) + terminator(1). A new room with no leader
// serializes to [0x00, 0x00, 0x00, 0xFF].
type RoomInfoCommand struct {
	Term        uint16
	LeaderIndex uint8
	ClientInfos []ClientInfo
}

// Octets serializes the command. Fixed-width writes into a grown slice cannot
// fail, so there is no error path.
func (c RoomInfoCommand) Octets() []byte {
	if len(c.ClientInfos) != 0 {
		panic("wire: non-empty client info encoding is not implemented")
	}
	buf := make([]byte, 0, 4)
	buf = binary.BigEndian.AppendUint16(buf, c.Term)
	buf = append(buf, c.LeaderIndex)
	buf = append(buf, roomInfoTerminator)
	return buf
}
