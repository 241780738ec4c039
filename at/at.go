package at

const (
	// Terminal Control
	CRLF   = "\r\n"
	Prompt = "> "

	// Response Codes
	OK         = "OK"
	ERROR      = "ERROR"
	NoCarrier  = "NO CARRIER"
	NoDialtone = "NO DIALTONE"
	Busy       = "BUSY"
	NoAnswer   = "NO ANSWER"
	CmeError   = "+CME ERROR:"
	CmsError   = "+CMS ERROR:"
	SendOK     = "SEND OK"
	SendFail   = "SEND FAIL"

	// Commands
	CmdAt            = "AT"
	CmdEchoOff       = "ATE0"
	CmdVerboseErrors = "AT+CMEE=2"
	CmdURCPortUART   = `AT+QURCCFG="urcport","uart1"`
	// Registration reports with location, one per domain
	CmdCSRegReports  = "AT+CREG=2"
	CmdPSRegReports  = "AT+CGREG=2"
	CmdEPSRegReports = "AT+CEREG=2"

	// Bare URCs, the whole line is the signal
	UrcReady           = "RDY"
	UrcPowerDown       = "NORMAL POWER DOWN"
	UrcPSMPowerDown    = "PSM POWER DOWN"
	UrcNetworkReg      = "+CREG:"
	UrcGPRSNetworkReg  = "+CGREG:"
	UrcEPSNetworkReg   = "+CEREG:"
	UrcIndication      = "+QIND:"
	UrcSimStatus       = "+QSIMSTAT:"
	UrcSocketOpen      = "+QIOPEN:"
	UrcSocket          = "+QIURC:"
	UrcSSLOpen         = "+QSSLOPEN:"
	UrcSSL             = "+QSSLURC:"
	UrcMQTTOpen        = "+QMTOPEN:"
	UrcMQTTClose       = "+QMTCLOSE:"
	UrcMQTTConnect     = "+QMTCONN:"
	UrcMQTTDisconnect  = "+QMTDISC:"
	UrcMQTTPublish     = "+QMTPUB:"
	UrcMQTTSubscribe   = "+QMTSUB:"
	UrcMQTTUnsubscribe = "+QMTUNS:"
	UrcMQTTReceive     = "+QMTRECV:"
	UrcMQTTState       = "+QMTSTAT:"
)

type ResponseType int

const (
	TypeFinal  ResponseType = iota // OK, ERROR
	TypeURC                        // Asynchronous notifications
	TypeData                       // Intermediate command output (+CSQ: ...)
	TypePrompt                     // Data input prompt
)

func (t ResponseType) String() string {
	switch t {
	case TypeFinal:
		return "final"
	case TypeURC:
		return "urc"
	case TypeData:
		return "data"
	case TypePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}
