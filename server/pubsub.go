package server

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/touka-aoi/room-net/domain"
)

// Topic names one delivery target in the pubsub.
type Topic string

// ConnectionTopic is the topic an endpoint subscribes to for datagrams
// addressed to its room connection.
func ConnectionTopic(id domain.ConnectionID) Topic {
	return Topic("connection:" + strconv.Itoa(int(id)))
}

// Message is one outbound datagram in flight from the room host to an
// endpoint.
type Message struct {
	ConnectionID domain.ConnectionID
	Data         []byte
}

// PubSub decouples the room host from the endpoints writing to sockets.
type PubSub interface {
	// Subscribe subscribes to a topic and returns the receiving channel.
	Subscribe(topic Topic) <-chan Message

	// Unsubscribe removes the subscription and closes its channel.
	Unsubscribe(topic Topic, ch <-chan Message)

	// Publish delivers msg to every subscriber, best-effort: subscribers with
	// a full channel are skipped.
	Publish(ctx context.Context, topic Topic, msg Message)
}

// DefaultChannelBuffer is the buffer size of channels created by Subscribe.
const DefaultChannelBuffer = 256

// SimplePubSub is the in-memory PubSub implementation.
type SimplePubSub struct {
	mu          sync.RWMutex
	subscribers map[Topic][]chan Message
}

func NewSimplePubSub() *SimplePubSub {
	return &SimplePubSub{
		subscribers: make(map[Topic][]chan Message),
	}
}

func (p *SimplePubSub) Subscribe(topic Topic) <-chan Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Message, DefaultChannelBuffer)
	p.subscribers[topic] = append(p.subscribers[topic], ch)
	return ch
}

func (p *SimplePubSub) Unsubscribe(topic Topic, ch <-chan Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			close(sub)
			p.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(p.subscribers[topic]) == 0 {
		delete(p.subscribers, topic)
	}
}

// Publish sends while holding the read lock: Unsubscribe closes channels
// under the write lock, so a send can never hit a closed channel. Sends are
// non-blocking, so the lock is never held across a stalled subscriber.
func (p *SimplePubSub) Publish(ctx context.Context, topic Topic, msg Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, ch := range p.subscribers[topic] {
		select {
		case <-ctx.Done():
			return
		case ch <- msg:
		default:
			slog.Warn("pub/sub: channel full, datagram dropped", "topic", topic)
		}
	}
}
