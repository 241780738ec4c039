package cellular

import (
	"fmt"
	"math"

	"i4.energy/across/cellular/at"
)

const (
	// InvalidSignalValue marks a signal metric the modem did not report.
	InvalidSignalValue int16 = math.MinInt16

	// InvalidSignalBars marks bars that were not computed.
	InvalidSignalBars uint8 = 0xFF

	csqUnknown = 99
)

// SignalInfo is a signal quality report. RSSI and RSRP are in dBm, RSRQ in
// dB and BER in hundredths of a percent.
type SignalInfo struct {
	RSSI int16 `json:"rssi"`
	RSRP int16 `json:"rsrp"`
	RSRQ int16 `json:"rsrq"`
	BER  int16 `json:"ber"`
	Bars uint8 `json:"bars"`
}

// Upper bound of each +CSQ BER class.
var berTable = [...]int16{14, 28, 57, 113, 226, 453, 905, 1810}

// ConvertCSQRSSI converts a +CSQ rssi index to dBm.
func ConvertCSQRSSI(raw int16) (int16, error) {
	switch {
	case raw == csqUnknown:
		return InvalidSignalValue, nil
	case raw >= 0 && raw <= 31:
		return -113 + 2*raw, nil
	default:
		return InvalidSignalValue, fmt.Errorf("csq rssi %d: %w", raw, at.ErrBadParameter)
	}
}

// ConvertCSQBER converts a +CSQ ber class to hundredths of a percent.
func ConvertCSQBER(raw int16) (int16, error) {
	switch {
	case raw == csqUnknown:
		return InvalidSignalValue, nil
	case raw >= 0 && int(raw) < len(berTable):
		return berTable[raw], nil
	default:
		return InvalidSignalValue, fmt.Errorf("csq ber %d: %w", raw, at.ErrBadParameter)
	}
}
