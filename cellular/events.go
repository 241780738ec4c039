package cellular

// URCEvent is passed to socket and PDN callbacks.
type URCEvent int

const (
	EventSocketOpened URCEvent = iota
	EventSocketOpenFailed
	EventPDNDeactivated
	EventSignalChanged
)

func (e URCEvent) String() string {
	switch e {
	case EventSocketOpened:
		return "socket_opened"
	case EventSocketOpenFailed:
		return "socket_open_failed"
	case EventPDNDeactivated:
		return "pdn_deactivated"
	case EventSignalChanged:
		return "signal_changed"
	default:
		return "unknown"
	}
}

// ModemEvent is a power or boot notification.
type ModemEvent int

const (
	ModemBootupOrReboot ModemEvent = iota
	ModemPoweredDown
	ModemPSMEnter
)

func (e ModemEvent) String() string {
	switch e {
	case ModemBootupOrReboot:
		return "bootup_or_reboot"
	case ModemPoweredDown:
		return "powered_down"
	case ModemPSMEnter:
		return "psm_enter"
	default:
		return "unknown"
	}
}

// SIMState is the card presence reported by +QSIMSTAT.
type SIMState int

const (
	SIMRemoved SIMState = iota
	SIMInserted
	SIMUnknown
	simStateMax
)

func (s SIMState) String() string {
	switch s {
	case SIMRemoved:
		return "removed"
	case SIMInserted:
		return "inserted"
	default:
		return "unknown"
	}
}

// PDN context ids accepted by the modem.
const (
	PDNContextIDMin = 1
	PDNContextIDMax = 16
)
