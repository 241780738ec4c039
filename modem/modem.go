package modem

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"i4.energy/across/cellular/at"
)

// URCDispatcher consumes unsolicited result code lines. HandleURC is called
// from the Loop goroutine, one line at a time.
type URCDispatcher interface {
	HandleURC(line string)
}

// Modem reads a BG96 style modem and routes its output. URC lines go to the
// configured URCDispatcher in arrival order; everything else is forwarded to
// the optional response channel.
type Modem struct {
	// transport provides the physical connection to the modem (serial, TCP, etc.)
	transport  Transport
	dispatcher URCDispatcher
	responses  chan<- string
	logger     *slog.Logger
	// atTimeout bounds each initialization command
	atTimeout time.Duration

	mu     sync.Mutex
	closed bool
	// loopRunning guards against a second reader on the transport
	loopRunning atomic.Bool

	// loopCancel stops the running Loop on Close
	loopCtx    context.Context
	loopCancel context.CancelFunc
}

// New dials the modem and, unless the config says otherwise, runs the
// initialization sequence: AT, echo off, verbose errors, URC routing
// to the AT port and network registration reports.
//
// Returns an error if the transport connection or modem initialization
// fails. The transport is closed in the latter case.
func New(ctx context.Context, config Config) (*Modem, error) {
	if config.Dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial modem: %w", err)
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	m := &Modem{
		transport:  transport,
		dispatcher: config.Dispatcher,
		responses:  config.Responses,
		logger:     config.Logger.With("component", "modem"),
		atTimeout:  config.ATTimeout,
	}
	m.loopCtx, m.loopCancel = context.WithCancel(ctx)

	if config.SkipInit {
		return m, nil
	}

	initCtx := ctx
	if config.InitTimeout > 0 {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, config.InitTimeout)
		defer cancel()
	}

	if err := m.init(initCtx); err != nil {
		m.loopCancel()
		transport.Close()
		return nil, fmt.Errorf("initialize modem: %w", err)
	}

	return m, nil
}

// Loop is the main event loop that reads the transport.
// It must be called exactly once after New(). Each line is classified:
//
// 1. URCs are handed to the URCDispatcher synchronously
// 2. Final results, data and prompts go to the response channel, if any
//
// The Loop runs until the provided context is cancelled, the modem is
// closed or the transport reports EOF. It's the ONLY goroutine that reads
// from the transport, so URCs are processed strictly in order.
//
// Usage:
//
//	m, err := New(ctx, config)
//	if err != nil { return err }
//
//	go m.Loop(ctx)
func (m *Modem) Loop(ctx context.Context) error {
	if !m.loopRunning.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer m.loopRunning.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.loopCtx, cancel)
	defer stop()

	scanner := bufio.NewScanner(m.transport)
	scanner.Split(at.Splitter)

	// Channels for tokens and errors from the scanner goroutine
	tokens := make(chan string, 10)
	scanErrs := make(chan error, 1)

	go func() {
		defer close(tokens)
		for scanner.Scan() {
			token := scanner.Text()
			if token != "" {
				select {
				case tokens <- token:
				case <-ctx.Done():
					return
				}
			}
		}
		// Reported before tokens is closed so the Loop sees it first
		if err := scanner.Err(); err != nil {
			scanErrs <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case token, ok := <-tokens:
			if !ok {
				select {
				case err := <-scanErrs:
					return fmt.Errorf("scanner error: %w", err)
				default:
					return io.EOF
				}
			}
			m.route(token)

		case err := <-scanErrs:
			return fmt.Errorf("scanner error: %w", err)
		}
	}
}

func (m *Modem) route(token string) {
	respType := at.Classify(token)

	if respType == at.TypeURC {
		if m.dispatcher == nil {
			m.logger.Debug("URC dropped, no dispatcher", "urc", token)
			return
		}
		m.dispatcher.HandleURC(token)
		return
	}

	if m.responses == nil {
		return
	}
	select {
	case m.responses <- token:
	default:
		m.logger.Warn("Response channel full, line dropped", "type", respType, "line", token)
	}
}

// Close shuts down the modem and releases all resources.
// It stops the event loop, closes the transport connection, and marks
// the modem as closed. After calling Close(), the modem cannot be reused.
func (m *Modem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true

	if m.loopCancel != nil {
		m.loopCancel()
	}

	if m.transport != nil {
		return m.transport.Close()
	}

	return nil
}

// init performs the initial setup sequence for the modem hardware.
func (m *Modem) init(ctx context.Context) error {
	if err := m.expectOkDirect(ctx, at.CmdAt); err != nil {
		return fmt.Errorf("modem not responding: %w", err)
	}

	if err := m.expectOkDirect(ctx, at.CmdEchoOff); err != nil {
		return fmt.Errorf("could not disable echo: %w", err)
	}

	if err := m.expectOkDirect(ctx, at.CmdVerboseErrors); err != nil {
		return fmt.Errorf("could not enable verbose errors: %w", err)
	}

	if err := m.expectOkDirect(ctx, at.CmdURCPortUART); err != nil {
		return fmt.Errorf("could not route URCs: %w", err)
	}

	for _, cmd := range []string{at.CmdCSRegReports, at.CmdPSRegReports, at.CmdEPSRegReports} {
		if err := m.expectOkDirect(ctx, cmd); err != nil {
			return fmt.Errorf("could not enable registration reports: %w", err)
		}
	}

	return nil
}

// execDirect executes an AT command directly on the transport and handles
// the complete request-response cycle including timeout management. It is
// only used during initialization, before the Loop owns the transport.
// URCs seen while waiting are dispatched like the Loop would.
func (m *Modem) execDirect(ctx context.Context, cmd string) (string, error) {
	if _, ok := ctx.Deadline(); !ok && m.atTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.atTimeout)
		defer cancel()
	}

	wire := strings.TrimSpace(cmd) + "\r"
	if _, err := m.transport.Write([]byte(wire)); err != nil {
		return "", fmt.Errorf("write command %q: %w", cmd, err)
	}

	scanner := bufio.NewScanner(m.transport)
	scanner.Split(at.Splitter)

	var lines []string

	for {
		select {
		case <-ctx.Done():
			return strings.Join(lines, "\n"), ctx.Err()
		default:
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return strings.Join(lines, "\n"), fmt.Errorf("read error: %w", err)
			}
			return strings.Join(lines, "\n"), io.EOF
		}

		token := scanner.Text()
		// Skip blank lines and the echo of cmd while echo is still on
		if token == "" || token == cmd {
			continue
		}

		switch at.Classify(token) {
		case at.TypeFinal:
			lines = append(lines, token)
			response := strings.Join(lines, "\n")
			if token == at.OK {
				return response, nil
			}
			return response, errors.New(token)

		case at.TypeData:
			lines = append(lines, token)

		case at.TypeURC:
			if m.dispatcher != nil {
				m.dispatcher.HandleURC(token)
			}

		case at.TypePrompt:
			lines = append(lines, token)
			return strings.Join(lines, "\n"), nil
		}
	}
}

// expectOkDirect executes an AT command and validates that the response
// ends with "OK".
func (m *Modem) expectOkDirect(ctx context.Context, cmd string) error {
	resp, err := m.execDirect(ctx, cmd)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(resp, at.OK) {
		return fmt.Errorf("unexpected response: %q", resp)
	}
	return nil
}
