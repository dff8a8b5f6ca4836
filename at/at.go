package at

const (
	// Terminal Control
	CRLF   = "\r\n"
	Prompt = ">"

	// Response Codes
	OK     = "OK"
	ERROR  = "ERROR"
	Error  = "Error"
	Fail   = "FAIL"
	SendOK = "SEND OK"
	Ready  = "ready"

	// Structured reply prefixes
	DataPrefix   = "+IPD"
	StatusPrefix = "STATUS:"

	// Commands
	CmdAt          = "AT"
	CmdRestart     = "AT+RST"
	CmdStatus      = "AT+CIPSTATUS"
	CmdSetMode     = "AT+CWMODE=%d"
	CmdSetCipMode  = "AT+CIPMODE=%d"
	CmdAutoConnect = "AT+CWAUTOCONN=%d"
	CmdJoinAP      = `AT+CWJAP="%s","%s"`
	CmdStart       = `AT+CIPSTART="%s","%s",%d`
	CmdSend        = "AT+CIPSEND=%d"
)

// FailureTokens end a response early with an error, whatever marker the
// caller is waiting for.
var FailureTokens = []string{Error, ERROR}

type LineType int

const (
	TypeText   LineType = iota // Echo and free-form lines
	TypeFinal                  // OK, ERROR, FAIL, SEND OK
	TypeData                   // Inbound data (+IPD,...)
	TypeStatus                 // Connection status (STATUS:n)
	TypePrompt                 // Raw data input prompt
	TypeReady                  // Boot banner end after a restart
)

func (t LineType) String() string {
	switch t {
	case TypeFinal:
		return "final"
	case TypeData:
		return "data"
	case TypeStatus:
		return "status"
	case TypePrompt:
		return "prompt"
	case TypeReady:
		return "ready"
	default:
		return "text"
	}
}
