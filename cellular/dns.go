package cellular

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"i4.energy/across/cellular/at"
)

type dnsResult struct {
	addr string
	err  error
}

// Module holds the module wide DNS query state. One query is in flight at a
// time; the handler registered for it receives every "dnsgip" line.
type Module struct {
	logger *slog.Logger

	mu           sync.Mutex
	queue        chan dnsResult
	resultNumber int
	resultIndex  int
	userData     any
	handler      DNSHandler
}

func newModule(logger *slog.Logger) *Module {
	return &Module{
		logger: logger,
		queue:  make(chan dnsResult, 1),
	}
}

// RegisterDNSHandler installs h for the next query. A nil h drops any
// further results.
func (m *Module) RegisterDNSHandler(h DNSHandler, userData any) {
	m.mu.Lock()
	m.handler = h
	m.userData = userData
	m.mu.Unlock()
}

func (m *Module) dnsHandler() (DNSHandler, any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler, m.userData
}

// StartDNSQuery prepares the module for a new +QIDNSGIP request and installs
// the default result collector.
func (m *Module) StartDNSQuery() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.queue) > 0 {
		<-m.queue
	}
	m.resultNumber = 0
	m.resultIndex = 0
	m.handler = DNSFunc(collectDNS)
	m.userData = nil
}

// AwaitDNSResult blocks until the pending query resolves and returns the
// first address. The handler is removed on return.
func (m *Module) AwaitDNSResult(ctx context.Context) (string, error) {
	defer m.RegisterDNSHandler(nil, nil)

	select {
	case r := <-m.queue:
		return r.addr, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Module) push(r dnsResult) {
	select {
	case m.queue <- r:
	default:
		m.logger.Warn("DNS result dropped, queue full", "addr", r.addr, "error", r.err)
	}
}

// collectDNS is the default handler. The first line is
// "<err>,<count>,<ttl>", then one address per line.
func collectDNS(m *Module, result string, _ any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resultNumber == 0 {
		rest := result
		code, err := nextInt(&rest)
		if err != nil {
			m.logger.Error("Malformed DNS result header", "line", result, "error", err)
			m.push(dnsResult{err: fmt.Errorf("%w: %w", ErrDNSQueryFailed, err)})
			return
		}
		if code != 0 {
			m.push(dnsResult{err: fmt.Errorf("%w: code %d", ErrDNSQueryFailed, code)})
			return
		}
		count, err := nextInt(&rest)
		if err != nil || count <= 0 {
			m.push(dnsResult{err: fmt.Errorf("%w: no addresses", ErrDNSQueryFailed)})
			return
		}
		m.resultNumber = int(count)
		m.resultIndex = 0
		return
	}

	if m.resultIndex == 0 {
		m.push(dnsResult{addr: strings.TrimSpace(result)})
	}
	m.resultIndex++
	if m.resultIndex >= m.resultNumber {
		m.resultNumber = 0
		m.resultIndex = 0
	}
}

// nextInt parses the next field as a decimal integer, ignoring surrounding
// whitespace.
func nextInt(s *string) (int32, error) {
	tok, err := at.NextToken(s)
	if err != nil {
		return 0, err
	}
	return at.StrToI(strings.TrimSpace(tok), 10)
}
