package server

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/touka-aoi/room-net/domain"
)

var (
	// ErrInitializationFailed is returned when an endpoint is constructed with
	// a missing dependency.
	ErrInitializationFailed = errors.New("server: failed to initialize endpoint")
)

const (
	idleCheckInterval  = time.Second
	closeStatusNormal  = 1000
	writeChannelBuffer = 64
)

// Endpoint binds one socket to one room connection: it attaches to the host,
// pumps inbound datagrams into it and outbound datagrams from the pubsub back
// to the socket. All loops stop together; the endpoint detaches on the way
// out.
type Endpoint struct {
	ctx    context.Context
	cancel context.CancelFunc

	session   *Session
	transport Transport
	pubsub    PubSub
	host      *RoomHost

	connectionID domain.ConnectionID // assigned by Attach during Run
	idleTimeout  time.Duration

	ctrlCh  chan endpointEvent
	writeCh chan []byte

	closed atomic.Bool
}

func NewEndpoint(session *Session, transport Transport, pubsub PubSub, host *RoomHost, idleTimeout time.Duration) (*Endpoint, error) {
	if session == nil || transport == nil || pubsub == nil || host == nil {
		return nil, ErrInitializationFailed
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Endpoint{
		ctx:         ctx,
		cancel:      cancel,
		session:     session,
		transport:   transport,
		pubsub:      pubsub,
		host:        host,
		idleTimeout: idleTimeout,
		ctrlCh:      make(chan endpointEvent, 16),
		writeCh:     make(chan []byte, writeChannelBuffer),
	}, nil
}

// ConnectionID returns the room connection this endpoint is attached as.
// Valid only while Run is active.
func (e *Endpoint) ConnectionID() domain.ConnectionID {
	return e.connectionID
}

// Run attaches to the room and pumps until the socket fails, the session goes
// idle, or Close is called.
func (e *Endpoint) Run() error {
	id, err := e.host.Attach(e.ctx, time.Now())
	if err != nil {
		// Never leave the socket hijacked: the peer gets a close frame and
		// the descriptor is released even when the room refuses us.
		e.close()
		return err
	}
	e.connectionID = id
	defer e.host.Detach(id)

	topic := ConnectionTopic(id)
	msgCh := e.pubsub.Subscribe(topic)
	defer e.pubsub.Unsubscribe(topic, msgCh)

	eg, ctx := errgroup.WithContext(e.ctx)
	eg.Go(func() error {
		e.ownerLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.readLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.writeLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.subscribeLoop(ctx, msgCh)
		return nil
	})
	return eg.Wait()
}

// Close requests a graceful shutdown.
func (e *Endpoint) Close(ctx context.Context) {
	e.sendCtrlEvent(ctx, endpointEvent{kind: evClose})
}

// ownerLoop is the only place the endpoint lifecycle state changes: it
// consumes control events and watches for idle sessions.
func (e *Endpoint) ownerLoop(ctx context.Context) {
	ticker := time.NewTicker(idleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.ctrlCh:
			e.handleControlEvent(ctx, ev)
		case <-ticker.C:
			if idle, reason := e.session.IsIdle(e.idleTimeout); idle {
				slog.InfoContext(ctx, "endpoint: session idle, closing", "sessionID", e.session.ID(), "reason", reason.String())
				e.close()
			}
		}
	}
}

// readLoop forwards inbound datagrams to the room host, stamping each with
// its receive time.
func (e *Endpoint) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			data, err := e.transport.Read(ctx)
			if err != nil {
				e.sendCtrlEvent(ctx, endpointEvent{kind: evReadError, err: err})
				return
			}
			e.session.TouchRead()
			err = e.host.Deliver(ctx, e.connectionID, time.Now(), data)
			if err != nil && !errors.Is(err, context.Canceled) {
				// Queue full: drop this datagram, the peer pings again.
				slog.WarnContext(ctx, "endpoint: inbound datagram dropped", "sessionID", e.session.ID(), "err", err)
			}
		}
	}
}

func (e *Endpoint) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-e.writeCh:
			if err := e.transport.Write(ctx, data); err != nil {
				e.sendCtrlEvent(ctx, endpointEvent{kind: evWriteError, err: err})
				return
			}
			e.session.TouchWrite()
		}
	}
}

// subscribeLoop forwards datagrams published for this connection to the write
// loop.
func (e *Endpoint) subscribeLoop(ctx context.Context, msgCh <-chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			select {
			case e.writeCh <- msg.Data:
			default:
				slog.WarnContext(ctx, "endpoint: writeCh full, datagram dropped", "sessionID", e.session.ID())
			}
		}
	}
}

func (e *Endpoint) handleControlEvent(ctx context.Context, ev endpointEvent) {
	switch ev.kind {
	case evClose:
		e.close()
	case evReadError, evWriteError:
		if ev.err != nil && !errors.Is(ev.err, context.Canceled) {
			slog.InfoContext(ctx, "endpoint: transport error, closing", "sessionID", e.session.ID(), "err", ev.err)
		}
		e.close()
	default:
		slog.WarnContext(ctx, "endpoint: unknown event kind", "kind", ev.kind)
	}
}

func (e *Endpoint) close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.cancel()
	e.session.Close()
	_ = e.transport.Close(closeStatusNormal, "")
}

func (e *Endpoint) sendCtrlEvent(ctx context.Context, ev endpointEvent) {
	select {
	case e.ctrlCh <- ev:
	case <-ctx.Done():
	}
}
