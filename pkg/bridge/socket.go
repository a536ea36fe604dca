package bridge

import (
	"fmt"

	"github.com/google/uuid"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pair"

	// Register transports (tcp, ipc, inproc)
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// SocketChannel is a Channel over an NNG pair socket, for an out-of-process
// renderer. Pair gives exactly one peer, which matches the bridge's
// single-writer model at the transport level.
type SocketChannel struct {
	id   string
	sock mangos.Socket
}

// ListenSocket binds a pair socket waiting for the remote side to dial.
func ListenSocket(addr string) (*SocketChannel, error) {
	sock, err := pair.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pair socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return &SocketChannel{id: uuid.NewString(), sock: sock}, nil
}

// DialSocket connects a pair socket to a listening remote side.
func DialSocket(addr string) (*SocketChannel, error) {
	sock, err := pair.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pair socket: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return &SocketChannel{id: uuid.NewString(), sock: sock}, nil
}

func (c *SocketChannel) ID() string { return c.id }

func (c *SocketChannel) Send(data []byte) error {
	return c.sock.Send(data)
}

func (c *SocketChannel) Receive() ([]byte, error) {
	return c.sock.Recv()
}

func (c *SocketChannel) Close() error {
	return c.sock.Close()
}
