package cellular

import (
	"fmt"
	"math"
	"strings"

	"i4.energy/across/cellular/at"
)

// parseIndication handles +QIND. Only the "csq" report is acted on.
func parseIndication(c *Context, body string) error {
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
	if !strings.Contains(sub, "csq") {
		return nil
	}
	return parseCSQ(c, line)
}

func parseCSQ(c *Context, line string) error {
	rawRSSI, err := nextInt16(&line)
	if err != nil {
		return err
	}
	rssi, err := ConvertCSQRSSI(rawRSSI)
	if err != nil {
		return err
	}
	rawBER, err := nextInt16(&line)
	if err != nil {
		return err
	}
	ber, err := ConvertCSQBER(rawBER)
	if err != nil {
		return err
	}

	info := SignalInfo{
		RSSI: rssi,
		RSRP: InvalidSignalValue,
		RSRQ: InvalidSignalValue,
		BER:  ber,
		Bars: InvalidSignalBars,
	}
	c.log().Debug("Signal quality", "rssi", info.RSSI, "ber", info.BER)
	if c.signalHandler == nil {
		c.log().Debug("Signal callback not set")
		return nil
	}
	c.signalHandler.SignalChanged(info)
	return nil
}

func nextInt16(s *string) (int16, error) {
	v, err := nextInt(s)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, fmt.Errorf("value %d: %w", v, at.ErrInvalidNumber)
	}
	return int16(v), nil
}

// parseSIMStatus handles "<enable>,<inserted>" from +QSIMSTAT.
func parseSIMStatus(c *Context, body string) error {
	if len(body) < 2 {
		return fmt.Errorf("sim status %q: %w", body, at.ErrBadParameter)
	}
	line := body
	enable, err := at.NextToken(&line)
	if err != nil {
		return err
	}
	c.log().Debug("SIM status report", "enable", strings.TrimSpace(enable))

	v, err := nextInt(&line)
	if err != nil {
		return err
	}
	if v < 0 || v >= int32(simStateMax) {
		return fmt.Errorf("sim state %d: %w", v, ErrIndexOutOfRange)
	}

	state := SIMState(v)
	c.simState.Store(int32(state))
	c.log().Info("SIM state changed", "state", state)
	if c.simHandler != nil {
		c.simHandler.SIMStateChanged(state)
	}
	return nil
}

func parseReady(c *Context, _ string) error {
	c.log().Debug("Modem ready")
	c.raiseModemEvent(ModemBootupOrReboot)
	return nil
}

func parsePowerDown(c *Context, _ string) error {
	c.log().Debug("Modem powered down")
	c.raiseModemEvent(ModemPoweredDown)
	return nil
}

func parsePSMPowerDown(c *Context, _ string) error {
	c.log().Debug("Modem entering PSM")
	c.raiseModemEvent(ModemPSMEnter)
	return nil
}

func (c *Context) raiseModemEvent(ev ModemEvent) {
	if c.modemHandler == nil {
		c.log().Debug("Modem event callback not set", "event", ev)
		return
	}
	c.modemHandler.ModemEvent(ev)
}
