package server

import (
	"context"

	"github.com/coder/websocket"
)

// Transport is the I/O boundary an Endpoint drives. One Read or Write moves
// exactly one datagram.
type Transport interface {
	Read(ctx context.Context) (data []byte, err error)
	Write(ctx context.Context, data []byte) error
	Close(code int32, reason string) error
}

// WebsocketTransport carries datagrams as binary WebSocket messages, one
// datagram per message.
type WebsocketTransport struct {
	conn *websocket.Conn
}

func NewWebsocketTransport(conn *websocket.Conn) *WebsocketTransport {
	return &WebsocketTransport{conn: conn}
}

// Read returns the next binary message. Text messages are not part of the
// protocol and are skipped.
func (t *WebsocketTransport) Read(ctx context.Context) ([]byte, error) {
	for {
		msgType, data, err := t.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if msgType != websocket.MessageBinary {
			continue
		}
		return data, nil
	}
}

func (t *WebsocketTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageBinary, data)
}

func (t *WebsocketTransport) Close(code int32, reason string) error {
	return t.conn.Close(websocket.StatusCode(code), reason)
}
