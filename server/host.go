package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/touka-aoi/room-net/datagram"
	"github.com/touka-aoi/room-net/domain"
)

var (
	// ErrHostBusy is returned when the inbound queue is full; the datagram is
	// dropped and the peer will simply ping again.
	ErrHostBusy = errors.New("server: room host inbound queue is full")
	// ErrRoomFull is returned when the room has no free connection id left.
	ErrRoomFull = errors.New("server: room is full")
)

const detachTimeout = 5 * time.Second

type inboundDatagram struct {
	connectionID domain.ConnectionID
	receivedAt   time.Time
	data         []byte
}

type attachRequest struct {
	now   time.Time
	reply chan domain.ConnectionID
}

type detachRequest struct {
	id domain.ConnectionID
}

// RoomHost exclusively owns one Room. All room access, including connection
// lifecycle, happens on the Run goroutine, so the model never needs a lock.
// Inbound datagrams are applied as they arrive; the room summary is broadcast
// to every attached connection once per broadcast interval.
type RoomHost struct {
	room   *domain.Room
	pubsub PubSub

	inCh     chan inboundDatagram
	attachCh chan attachRequest
	detachCh chan detachRequest

	broadcastInterval time.Duration
}

func NewRoomHost(pubsub PubSub, broadcastInterval time.Duration) *RoomHost {
	if broadcastInterval <= 0 {
		broadcastInterval = time.Second / 4
	}
	return &RoomHost{
		room:              domain.NewRoom(),
		pubsub:            pubsub,
		inCh:              make(chan inboundDatagram, 1024),
		attachCh:          make(chan attachRequest),
		detachCh:          make(chan detachRequest),
		broadcastInterval: broadcastInterval,
	}
}

// Run drives the room until ctx is done.
func (h *RoomHost) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-h.attachCh:
			h.handleAttach(ctx, req)
		case req := <-h.detachCh:
			h.room.DestroyConnection(req.id)
			slog.InfoContext(ctx, "room host: connection detached", "connectionID", req.id)
		case in := <-h.inCh:
			h.apply(ctx, in)
		case <-ticker.C:
			h.broadcast(ctx)
		}
	}
}

// Attach creates a room connection and returns its id. now stamps the
// connection's creation time.
func (h *RoomHost) Attach(ctx context.Context, now time.Time) (domain.ConnectionID, error) {
	req := attachRequest{now: now, reply: make(chan domain.ConnectionID, 1)}
	select {
	case <-ctx.Done():
		return domain.NoConnection, ctx.Err()
	case h.attachCh <- req:
	}
	select {
	case <-ctx.Done():
		// The request is already in flight: the host may still create the
		// connection, and nobody would own it. Reclaim it when the reply
		// lands.
		go func() {
			if id := <-req.reply; id != domain.NoConnection {
				h.Detach(id)
			}
		}()
		return domain.NoConnection, ctx.Err()
	case id := <-req.reply:
		if id == domain.NoConnection {
			return domain.NoConnection, ErrRoomFull
		}
		return id, nil
	}
}

// Detach destroys the connection. Endpoints call this on the way out, after
// their own context is already cancelled, so it bounds the wait itself.
func (h *RoomHost) Detach(id domain.ConnectionID) {
	select {
	case h.detachCh <- detachRequest{id: id}:
	case <-time.After(detachTimeout):
		slog.Warn("room host: detach dropped", "connectionID", id)
	}
}

// Deliver queues one inbound datagram for the addressed connection.
// receivedAt is the transport receive time, forwarded to the room for
// liveness bookkeeping.
func (h *RoomHost) Deliver(ctx context.Context, id domain.ConnectionID, receivedAt time.Time, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case h.inCh <- inboundDatagram{connectionID: id, receivedAt: receivedAt, data: data}:
		return nil
	default:
		return ErrHostBusy
	}
}

func (h *RoomHost) handleAttach(ctx context.Context, req attachRequest) {
	conn := h.room.CreateConnection(req.now)
	if conn == nil {
		req.reply <- domain.NoConnection
		return
	}
	slog.InfoContext(ctx, "room host: connection attached", "connectionID", conn.ID)
	req.reply <- conn.ID
}

// apply dispatches one datagram into the room. A failed dispatch drops that
// one datagram and leaves the room in its prior state; unknown-connection
// errors point at a lifecycle bug and are logged louder.
func (h *RoomHost) apply(ctx context.Context, in inboundDatagram) {
	err := datagram.Receive(h.room, in.connectionID, in.receivedAt, in.data)
	if err == nil {
		return
	}
	var unknownConn *datagram.UnknownConnectionError
	if errors.As(err, &unknownConn) {
		slog.ErrorContext(ctx, "room host: datagram for unknown connection", "connectionID", in.connectionID, "err", err)
		return
	}
	slog.WarnContext(ctx, "room host: datagram dropped", "connectionID", in.connectionID, "err", err)
}

func (h *RoomHost) broadcast(ctx context.Context) {
	if len(h.room.Connections) == 0 {
		return
	}
	data := datagram.Send(h.room)
	for id := range h.room.Connections {
		h.pubsub.Publish(ctx, ConnectionTopic(id), Message{ConnectionID: id, Data: data})
	}
}
