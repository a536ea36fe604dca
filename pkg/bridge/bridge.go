// Package bridge correlates asynchronous operation requests and responses
// between the engine's host process and one externally connected caller
// (typically the canvas renderer).
//
// Every outbound request carries a unique numeric correlation id; the
// matching response is identified by that id alone, never by arrival order.
// A per-request timer rejects requests the remote never answers, and a
// channel disconnect immediately rejects everything still pending on it.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stormlabs/stormgraph/pkg/logging"
	"github.com/stormlabs/stormgraph/pkg/metrics"
)

var (
	// ErrNotConnected is returned when a request is issued with no channel.
	ErrNotConnected = errors.New("bridge: no channel connected")

	// ErrWriterActive is returned when a second channel connects while the
	// first is still active. The bridge is a single-writer model; the first
	// connected channel is the sole routing target.
	ErrWriterActive = errors.New("bridge: a writer channel is already connected")

	// ErrRequestTimeout rejects a request whose response never arrived.
	ErrRequestTimeout = errors.New("bridge: request timed out")

	// ErrChannelDisconnected rejects every request still pending when its
	// channel disconnects.
	ErrChannelDisconnected = errors.New("bridge: channel disconnected")
)

// DefaultRequestTimeout bounds how long a request waits for its response.
const DefaultRequestTimeout = 5 * time.Second

// Channel is a connected transport. Receive blocks until a frame arrives or
// the channel is closed.
type Channel interface {
	ID() string
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}

type pendingRequest struct {
	done chan result
}

type result struct {
	data json.RawMessage
	err  error
}

// session is the per-channel state: the pending map is scoped to the
// channel, so a response is only ever matched on the channel it arrived on.
type session struct {
	channel Channel
	pending map[uint64]*pendingRequest
	mu      sync.Mutex
	closed  bool
}

// Bridge routes requests to the single active channel and resolves them by
// correlation id.
type Bridge struct {
	timeout time.Duration
	logger  logging.Logger
	metrics *metrics.Registry

	nextID atomic.Uint64

	mu     sync.Mutex
	active *session
}

// Options configures a bridge. Zero values get safe defaults.
type Options struct {
	Timeout time.Duration
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// New creates a bridge with no connected channel.
func New(opts Options) *Bridge {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewTestRegistry()
	}
	return &Bridge{
		timeout: opts.Timeout,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// Connect registers a channel as the routing target and starts consuming
// its inbound frames. While one channel is active, any further Connect is
// rejected with ErrWriterActive.
func (b *Bridge) Connect(channel Channel) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return ErrWriterActive
	}

	s := &session{
		channel: channel,
		pending: make(map[uint64]*pendingRequest),
	}
	b.active = s
	go b.readLoop(s)

	b.logger.Info("bridge channel connected", logging.String("channel", channel.ID()))
	return nil
}

// Connected reports whether a channel is currently active.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active != nil
}

// Disconnect tears down the active channel, immediately rejecting every
// request still pending on it. No request is left hanging past disconnect.
func (b *Bridge) Disconnect() {
	b.mu.Lock()
	s := b.active
	b.active = nil
	b.mu.Unlock()

	if s == nil {
		return
	}
	b.teardown(s)
}

func (b *Bridge) teardown(s *session) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	evicted := make([]*pendingRequest, 0, len(s.pending))
	for id, p := range s.pending {
		evicted = append(evicted, p)
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, p := range evicted {
		p.done <- result{err: ErrChannelDisconnected}
		b.metrics.BridgePending.Dec()
		b.metrics.BridgeRequestsTotal.WithLabelValues("disconnected").Inc()
	}

	s.channel.Close()
	b.logger.Info("bridge channel disconnected", logging.String("channel", s.channel.ID()))
}

// Request sends an operation to the connected channel and suspends the
// caller until the correlated response, the per-request timeout, the
// channel's disconnect, or ctx cancellation resolves it.
func (b *Bridge) Request(ctx context.Context, operation string, fields map[string]any) (json.RawMessage, error) {
	b.mu.Lock()
	s := b.active
	b.mu.Unlock()
	if s == nil {
		return nil, ErrNotConnected
	}

	requestID := b.nextID.Add(1)
	p := &pendingRequest{done: make(chan result, 1)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrChannelDisconnected
	}
	s.pending[requestID] = p
	s.mu.Unlock()
	b.metrics.BridgePending.Inc()

	frame, err := json.Marshal(Request{Type: operation, RequestID: requestID, Fields: fields})
	if err == nil {
		err = s.channel.Send(frame)
	}
	if err != nil {
		b.evict(s, requestID)
		b.metrics.BridgeRequestsTotal.WithLabelValues("send_error").Inc()
		return nil, err
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case res := <-p.done:
		if res.err != nil {
			return nil, res.err
		}
		b.metrics.BridgeRequestsTotal.WithLabelValues("ok").Inc()
		return res.data, nil
	case <-timer.C:
		b.evict(s, requestID)
		b.metrics.BridgeRequestsTotal.WithLabelValues("timeout").Inc()
		b.logger.Warn("bridge request timed out",
			logging.String("operation", operation),
			logging.Int("requestId", int(requestID)))
		return nil, ErrRequestTimeout
	case <-ctx.Done():
		b.evict(s, requestID)
		b.metrics.BridgeRequestsTotal.WithLabelValues("canceled").Inc()
		return nil, ctx.Err()
	}
}

// evict removes a pending entry that resolved without a response.
func (b *Bridge) evict(s *session, requestID uint64) {
	s.mu.Lock()
	if _, exists := s.pending[requestID]; exists {
		delete(s.pending, requestID)
		b.metrics.BridgePending.Dec()
	}
	s.mu.Unlock()
}

// readLoop consumes inbound frames and resolves pending requests by
// correlation id. A receive failure means the channel is gone.
func (b *Bridge) readLoop(s *session) {
	for {
		frame, err := s.channel.Receive()
		if err != nil {
			b.mu.Lock()
			if b.active == s {
				b.active = nil
			}
			b.mu.Unlock()
			b.teardown(s)
			return
		}

		resp, err := parseResponse(frame)
		if err != nil {
			b.logger.Debug("dropping malformed bridge frame", logging.Err(err))
			continue
		}

		s.mu.Lock()
		p, exists := s.pending[resp.RequestID]
		if exists {
			delete(s.pending, resp.RequestID)
		}
		s.mu.Unlock()

		if !exists {
			// Unmatched response: late (already timed out) or not ours.
			b.logger.Debug("dropping unmatched bridge response",
				logging.Int("requestId", int(resp.RequestID)))
			continue
		}

		b.metrics.BridgePending.Dec()
		p.done <- result{data: resp.Data}
	}
}
