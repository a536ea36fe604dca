package bridge

import (
	"errors"

	"github.com/google/uuid"
)

// ErrChannelClosed is returned by memory channel operations after Close.
var ErrChannelClosed = errors.New("bridge: channel closed")

// MemoryChannel is an in-process Channel backed by Go channels. The host
// side is the bridge; the peer side stands in for the remote renderer.
// Used by tests and by in-process embedding.
type MemoryChannel struct {
	id       string
	inbound  chan []byte
	outbound chan []byte
	closed   chan struct{}
}

// NewMemoryChannel creates a memory channel with a generated id.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{
		id:       uuid.NewString(),
		inbound:  make(chan []byte, 16),
		outbound: make(chan []byte, 16),
		closed:   make(chan struct{}),
	}
}

func (c *MemoryChannel) ID() string { return c.id }

// Send delivers a frame to the peer side.
func (c *MemoryChannel) Send(data []byte) error {
	select {
	case <-c.closed:
		return ErrChannelClosed
	case c.outbound <- data:
		return nil
	}
}

// Receive blocks until the peer delivers a frame or the channel closes.
func (c *MemoryChannel) Receive() ([]byte, error) {
	select {
	case <-c.closed:
		return nil, ErrChannelClosed
	case data := <-c.inbound:
		return data, nil
	}
}

// Close unblocks both sides.
func (c *MemoryChannel) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return nil
}

// PeerSend injects a frame as if the remote side sent it.
func (c *MemoryChannel) PeerSend(data []byte) error {
	select {
	case <-c.closed:
		return ErrChannelClosed
	case c.inbound <- data:
		return nil
	}
}

// PeerReceive reads the next frame the bridge sent, from the remote side's
// point of view.
func (c *MemoryChannel) PeerReceive() ([]byte, error) {
	select {
	case <-c.closed:
		return nil, ErrChannelClosed
	case data := <-c.outbound:
		return data, nil
	}
}
