package feed

import (
	"context"
	"errors"
	"sync"
)

// ErrFakeClosed is what FakeTransport.Recv returns once the fake
// connection has ended without a specific error.
var ErrFakeClosed = errors.New("fake transport closed")

// FakeTransport drives a Conn without a server: frames pushed here come
// out of Recv in order, and Fail simulates the connection dropping.
type FakeTransport struct {
	frames chan []byte
	done   chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		frames: make(chan []byte, 64),
		done:   make(chan struct{}),
	}
}

// Push queues one frame for Recv. Dropped once the fake has ended.
func (f *FakeTransport) Push(frame string) {
	select {
	case f.frames <- []byte(frame):
	case <-f.done:
	}
}

// Fail ends the connection with err (ErrFakeClosed when nil).
func (f *FakeTransport) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	f.once.Do(func() { close(f.done) })
}

func (f *FakeTransport) Recv(ctx context.Context) ([]byte, error) {
	// Drain queued frames before reporting the end of the connection.
	select {
	case data := <-f.frames:
		return data, nil
	default:
	}
	select {
	case data := <-f.frames:
		return data, nil
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.err != nil {
			return nil, f.err
		}
		return nil, ErrFakeClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *FakeTransport) Close() error {
	f.once.Do(func() { close(f.done) })
	return nil
}
