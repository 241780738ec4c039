package cellular

import (
	"fmt"
	"strings"

	"i4.energy/across/cellular/at"
)

// nextIndex parses the next field as a socket index in [0, MaxSockets).
func nextIndex(s *string) (int, error) {
	v, err := nextInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= MaxSockets {
		return 0, fmt.Errorf("socket index %d: %w", v, ErrIndexOutOfRange)
	}
	return int(v), nil
}

// parseSocketOpen handles "<socket>,<err>" from +QIOPEN and +QSSLOPEN.
func parseSocketOpen(c *Context, body string) error {
	line, err := at.RemoveAllWhiteSpaces(body)
	if err != nil {
		return err
	}
	index, err := nextIndex(&line)
	if err != nil {
		return err
	}
	sock, err := c.Socket(index)
	if err != nil {
		return err
	}
	code, err := nextInt(&line)
	if err != nil {
		return err
	}

	ev := EventSocketOpened
	if code != 0 {
		ev = EventSocketOpenFailed
		c.log().Error("Socket open failed", "socket", index, "code", code)
		err = sock.fire(socketEventOpenFailed)
	} else {
		c.log().Debug("Socket open", "socket", index)
		err = sock.fire(socketEventOpened)
	}
	if err != nil {
		return err
	}

	if sock.callbacks.Open == nil {
		c.log().Debug("Socket open callback not set", "socket", index)
		return nil
	}
	sock.callbacks.Open.SocketOpen(sock, ev)
	return nil
}

// parseSocketURC handles the sub-commands of +QIURC and +QSSLURC.
func parseSocketURC(c *Context, body string) error {
	line, err := at.RemoveAllDoubleQuotes(body)
	if err != nil {
		return err
	}
	line, err = at.RemoveLeadingWhiteSpaces(line)
	if err != nil {
		return err
	}
	sub, err := at.NextToken(&line)
	if err != nil {
		return err
	}

	switch {
	case strings.Contains(sub, "recv"):
		return socketRecv(c, line)
	case sub == "closed":
		return socketClosed(c, line)
	case sub == "pdpdeact":
		return pdnDeactivated(c, line)
	case sub == "dnsgip":
		return dnsResultLine(c, line)
	default:
		c.log().Debug("Unhandled socket URC", "sub", sub)
		return nil
	}
}

func socketRecv(c *Context, line string) error {
	index, err := nextIndex(&line)
	if err != nil {
		return err
	}
	sock, err := c.Socket(index)
	if err != nil {
		return err
	}
	if sock.Mode() != AccessBuffer {
		return nil
	}
	if sock.callbacks.DataReady == nil {
		c.log().Debug("Socket data ready callback not set", "socket", index)
		return nil
	}
	sock.callbacks.DataReady.SocketDataReady(sock)
	return nil
}

func socketClosed(c *Context, line string) error {
	index, err := nextIndex(&line)
	if err != nil {
		return err
	}
	sock, err := c.Socket(index)
	if err != nil {
		return err
	}
	if err := sock.fire(socketEventClosed); err != nil {
		return err
	}
	if sock.callbacks.Closed == nil {
		c.log().Info("Socket closed, no callback registered", "socket", index)
		return nil
	}
	sock.callbacks.Closed.SocketClosed(sock)
	return nil
}

func pdnDeactivated(c *Context, line string) error {
	id, err := nextInt(&line)
	if err != nil {
		return err
	}
	if !c.PDNActive(int(id)) {
		return fmt.Errorf("pdn %d deactivated: %w", id, ErrInactivePDN)
	}

	c.log().Info("PDN context deactivated", "context", id)
	if c.pdnHandler != nil {
		c.pdnHandler.PDNEvent(EventPDNDeactivated, uint8(id))
	} else {
		c.log().Debug("PDN event callback not set", "context", id)
	}
	c.deactivatePDN(int(id))
	return nil
}

func dnsResultLine(c *Context, line string) error {
	module := c.Module()
	if module == nil {
		return fmt.Errorf("dns result: %w", ErrInvalidHandle)
	}
	handler, userData := module.dnsHandler()
	if handler == nil {
		c.log().Debug("Spurious DNS response", "result", line)
		return fmt.Errorf("dns result: %w", ErrInvalidData)
	}
	handler.DNSResult(module, line, userData)
	return nil
}
