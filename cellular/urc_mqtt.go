package cellular

import (
	"errors"
	"fmt"
	"math"

	"i4.energy/across/cellular/at"
)

// Result codes of +QMTOPEN and +QMTCONN.
const (
	mqttOpenSuccess    = 0
	mqttConnectSuccess = 0
	mqttConnectRetry   = 1
)

// mqttHeader strips whitespace and resolves the leading socket index.
func mqttHeader(c *Context, body string) (*MQTTSocket, string, error) {
	line, err := at.RemoveAllWhiteSpaces(body)
	if err != nil {
		return nil, "", err
	}
	index, err := nextIndex(&line)
	if err != nil {
		return nil, "", err
	}
	m, err := c.MQTTSocket(index)
	if err != nil {
		return nil, "", err
	}
	return m, line, nil
}

// parseMQTTOpen handles "<index>,<result>". The open callback runs once the
// result field is present, even if it is not a number.
func parseMQTTOpen(c *Context, body string) error {
	m, line, err := mqttHeader(c, body)
	if err != nil {
		return err
	}
	tok, err := at.NextToken(&line)
	if err != nil {
		return err
	}

	code, parseErr := at.StrToI(tok, 10)
	if parseErr == nil {
		if code == mqttOpenSuccess {
			err = m.fire(mqttEventOpened)
		} else {
			c.log().Error("MQTT open failed", "mqtt", m.Index(), "code", code)
			err = m.fire(mqttEventOpenFailed)
		}
		if err != nil {
			return err
		}
	}

	if m.callbacks.Open == nil {
		c.log().Debug("MQTT open callback not set", "mqtt", m.Index())
	} else {
		m.callbacks.Open.MQTTOpened(m)
	}
	return parseErr
}

// parseMQTTConnect handles "<index>,<result>[,<ret_code>]".
func parseMQTTConnect(c *Context, body string) error {
	m, line, err := mqttHeader(c, body)
	if err != nil {
		return err
	}
	tok, err := at.NextToken(&line)
	if err != nil {
		return err
	}

	code, parseErr := at.StrToI(tok, 10)
	if parseErr == nil {
		switch code {
		case mqttConnectSuccess:
			err = m.fire(mqttEventConnected)
		case mqttConnectRetry:
			err = m.fire(mqttEventConnectRetry)
		default:
			c.log().Error("MQTT connect failed", "mqtt", m.Index(), "code", code)
			err = m.fire(mqttEventDisconnected)
		}
		if err != nil {
			return err
		}
	}

	if m.callbacks.Connect == nil {
		c.log().Debug("MQTT connect callback not set", "mqtt", m.Index())
	} else {
		m.callbacks.Connect.MQTTConnected(m)
	}
	return parseErr
}

// sessionEnd handles "<index>,<result>" shared by +QMTCLOSE and +QMTDISC. A
// non-negative result fires event. A negative result is logged and the
// callback still runs; a missing or unreadable result aborts before it.
func sessionEnd(c *Context, body, event, name string, notify func(m *MQTTSocket) bool) error {
	m, line, err := mqttHeader(c, body)
	if err != nil {
		return err
	}
	code, err := nextInt(&line)
	if err != nil {
		return fmt.Errorf("mqtt %s result: %w", name, err)
	}

	if code >= 0 {
		if err := m.fire(event); err != nil {
			return err
		}
	} else {
		c.log().Error("MQTT "+name+" failed", "mqtt", m.Index(), "code", code)
	}

	if !notify(m) {
		c.log().Debug("MQTT "+name+" callback not set", "mqtt", m.Index())
	}
	return nil
}

// parseMQTTClose handles +QMTCLOSE. The socket returns to the allocated state.
func parseMQTTClose(c *Context, body string) error {
	return sessionEnd(c, body, mqttEventClosed, "close", func(m *MQTTSocket) bool {
		if m.callbacks.Close == nil {
			return false
		}
		m.callbacks.Close.MQTTClosed(m)
		return true
	})
}

// parseMQTTDisconnect handles +QMTDISC.
func parseMQTTDisconnect(c *Context, body string) error {
	return sessionEnd(c, body, mqttEventDisconnected, "disconnect", func(m *MQTTSocket) bool {
		if m.callbacks.Disconnect == nil {
			return false
		}
		m.callbacks.Disconnect.MQTTDisconnected(m)
		return true
	})
}

// outgoingAck returns the parser for +QMTPUB, +QMTSUB and +QMTUNS, which
// share the layout "<index>,<msg_id>,<result>[,<value>]". A two field line
// is read as "<index>,<result>".
func outgoingAck(ev MQTTEvent) func(c *Context, body string) error {
	return func(c *Context, body string) error {
		m, line, err := mqttHeader(c, body)
		if err != nil {
			return err
		}
		tok, err := at.NextToken(&line)
		if err != nil {
			return err
		}
		resultTok, err := at.NextToken(&line)
		switch {
		case errors.Is(err, at.ErrNoToken):
			resultTok = tok
		case err != nil:
			return err
		default:
			msgID, err := at.StrToI(tok, 10)
			if err != nil {
				c.log().Warn("MQTT ack with unreadable message id", "mqtt", m.Index(), "event", ev, "msg_id", tok)
			} else {
				c.log().Debug("MQTT ack", "mqtt", m.Index(), "event", ev, "msg_id", msgID)
			}
		}

		result := OutgoingFailure
		code, parseErr := at.StrToI(resultTok, 10)
		if parseErr == nil && code >= int32(OutgoingSuccess) && code <= int32(OutgoingFailure) {
			result = OutgoingResult(code)
		}

		if m.callbacks.Outgoing == nil {
			c.log().Debug("MQTT ack callback not set", "mqtt", m.Index(), "event", ev)
		} else {
			m.callbacks.Outgoing.MQTTAck(m, ev, result)
		}
		return parseErr
	}
}

// parseMQTTState handles "<index>,<err_code>" from +QMTSTAT. The session is
// always marked disconnected before the callback sees the raw code.
func parseMQTTState(c *Context, body string) error {
	m, line, err := mqttHeader(c, body)
	if err != nil {
		return err
	}
	code, err := nextUint8(&line)
	if err != nil {
		return err
	}
	if err := m.fire(mqttEventDisconnected); err != nil {
		return err
	}

	status := MQTTStateCode(code)
	c.log().Info("MQTT state changed", "mqtt", m.Index(), "status", status)
	if m.callbacks.State == nil {
		c.log().Debug("MQTT state callback not set", "mqtt", m.Index())
		return nil
	}
	m.callbacks.State.MQTTStateChanged(m, status)
	return nil
}

// parseMQTTReceive handles "<index>,<buffer_index>" from +QMTRECV when
// messages are held in the modem buffers.
func parseMQTTReceive(c *Context, body string) error {
	m, line, err := mqttHeader(c, body)
	if err != nil {
		return err
	}
	buffer, err := nextUint8(&line)
	if err != nil {
		return err
	}
	if m.callbacks.Receive == nil {
		c.log().Debug("MQTT receive callback not set", "mqtt", m.Index())
		return nil
	}
	m.callbacks.Receive.MQTTReceived(m, buffer)
	return nil
}

func nextUint8(s *string) (uint8, error) {
	v, err := nextInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("value %d: %w", v, at.ErrInvalidNumber)
	}
	return uint8(v), nil
}
