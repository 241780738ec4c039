package modem

import (
	"context"
	"io"
	"sync"
)

// TestTransport simulates a blocking serial port. Reads block until data is
// queued with SendData or the transport is closed, like the Loop's scanner
// goroutine would see on real hardware.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	written  []string
	closed   bool
}

func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
	}
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.written = append(t.written, string(p))
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendData queues modem output to be read by the transport.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}

// Written returns every command written so far.
func (t *TestTransport) Written() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.written...)
}

// TestDialer hands out a fixed transport.
type TestDialer struct {
	Transport Transport
}

func (d TestDialer) Dial(context.Context) (Transport, error) {
	return d.Transport, nil
}
