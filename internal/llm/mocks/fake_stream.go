package mocks

import (
	"context"
	"io"
	"sync"
)

// FakeStream replays a fixed chunk sequence, optionally ending in Err instead
// of io.EOF. Gate, when set, is received from before every chunk so tests can
// pace delivery.
type FakeStream struct {
	Chunks []string
	Err    error
	Gate   chan struct{}

	mu     sync.Mutex
	pos    int
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

func NewFakeStream(chunks ...string) *FakeStream {
	ctx, cancel := context.WithCancel(context.Background())
	return &FakeStream{Chunks: chunks, ctx: ctx, cancel: cancel}
}

func (s *FakeStream) Recv() (string, error) {
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-s.ctx.Done():
			return "", io.EOF
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", io.EOF
	}
	if s.pos < len(s.Chunks) {
		chunk := s.Chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", io.EOF
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancel()
	return nil
}

// Closed reports whether Close was called.
func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
