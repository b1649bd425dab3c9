package wire

import (
	"bytes"
	"errors"
	"testing"
)

var pingFixture = []byte{
	PingCommandTypeID,
	0x00, 0x20, // term
	0xF5, 0xE6, 0x0E, 0x32, 0xE9, 0xE4, 0x7F, 0x08, // knowledge
	0x01, // has connection to leader
}

func TestReadCommand_Ping(t *testing.T) {
	cmd, err := ReadCommand(NewOctetReader(pingFixture))
	if err != nil {
		t.Fatalf("ReadCommand failed: %v", err)
	}

	ping, ok := cmd.(*PingCommand)
	if !ok {
		t.Fatalf("command type = %T, want *PingCommand", cmd)
	}
	if ping.Term != 0x0020 {
		t.Errorf("Term = 0x%04X, want 0x0020", ping.Term)
	}
	if ping.Knowledge != 17718865395771014920 {
		t.Errorf("Knowledge = %d, want 17718865395771014920", ping.Knowledge)
	}
	if !ping.HasConnectionToLeader {
		t.Error("HasConnectionToLeader = false, want true")
	}
}

func TestReadCommand_UnknownTag(t *testing.T) {
	_, err := ReadCommand(NewOctetReader([]byte{0x01}))

	var unknown *UnknownCommandTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownCommandTypeError", err)
	}
	if unknown.Tag != 0x01 {
		t.Errorf("Tag = 0x%02X, want 0x01", unknown.Tag)
	}
}

func TestReadCommand_Truncated(t *testing.T) {
	for size := 0; size < PingPayloadSize; size++ {
		_, err := ReadCommand(NewOctetReader(pingFixture[:size]))
		if !errors.Is(err, ErrShortBuffer) {
			t.Errorf("size %d: err = %v, want ErrShortBuffer", size, err)
		}
	}
}

func TestRoomInfoCommand_Octets(t *testing.T) {
	tests := []struct {
		name string
		cmd  RoomInfoCommand
		want []byte
	}{
		{"new room, no leader", RoomInfoCommand{}, []byte{0x00, 0x00, 0x00, 0xFF}},
		{"term and leader set", RoomInfoCommand{Term: 0x1234, LeaderIndex: 2}, []byte{0x12, 0x34, 0x02, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Octets(); !bytes.Equal(got, tt.want) {
				t.Errorf("Octets = % X, want % X", got, tt.want)
			}
		})
	}
}
