package state

import "fmt"

// HandshakeMsgType identifies a handshake message by its RFC 5246
// HandshakeType wire value.
type HandshakeMsgType uint8

const (
	HelloRequest    HandshakeMsgType = 0x00
	ClientHello     HandshakeMsgType = 0x01
	ServerHello     HandshakeMsgType = 0x02
	Certificate     HandshakeMsgType = 0x0b
	ServerKeyXchg   HandshakeMsgType = 0x0c
	CertRequest     HandshakeMsgType = 0x0d
	ServerHelloDone HandshakeMsgType = 0x0e
	CertVerify      HandshakeMsgType = 0x0f
	ClientKeyXchg   HandshakeMsgType = 0x10
	Finished        HandshakeMsgType = 0x14
)

func (t HandshakeMsgType) String() string {
	switch t {
	case HelloRequest:
		return "HelloRequest"
	case ClientHello:
		return "ClientHello"
	case ServerHello:
		return "ServerHello"
	case Certificate:
		return "Certificate"
	case ServerKeyXchg:
		return "ServerKeyXchg"
	case CertRequest:
		return "CertRequest"
	case ServerHelloDone:
		return "ServerHelloDone"
	case CertVerify:
		return "CertVerify"
	case ClientKeyXchg:
		return "ClientKeyXchg"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("HandshakeMsgType(%d)", uint8(t))
	}
}

// HandshakeStep names one of the twelve handshake positions the status
// machine tracks while Status.Kind is InHandshake.
type HandshakeStep int

const (
	ClientHelloStep HandshakeStep = iota
	ServerHelloStep
	ServerCertificateStep
	ServerKeyXchgStep
	ServerCertificateReqStep
	ServerHelloDoneStep
	ClientCertificateStep
	ClientKeyXchgStep
	ClientCertificateVerifyStep
	ClientChangeCipherStep
	ClientFinishedStep
	ServerChangeCipherStep
)

func (s HandshakeStep) String() string {
	names := [...]string{
		"ClientHello", "ServerHello", "ServerCertificate", "ServerKeyXchg",
		"ServerCertificateReq", "ServerHelloDone", "ClientCertificate",
		"ClientKeyXchg", "ClientCertificateVerify", "ClientChangeCipher",
		"ClientFinished", "ServerChangeCipher",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return fmt.Sprintf("HandshakeStep(%d)", int(s))
	}
	return names[s]
}

// StatusKind is the top-level shape of Status: whether a handshake is in
// progress and, if not, which of the three non-handshake states applies.
type StatusKind int

const (
	Init StatusKind = iota
	HandshakeReq
	InHandshake
	Ok
)

// Status is the handshake status machine's current state: a StatusKind
// plus, when Kind is InHandshake, the specific step within it.
type Status struct {
	Kind StatusKind
	Step HandshakeStep
}

func (s Status) String() string {
	switch s.Kind {
	case Init:
		return "Init"
	case HandshakeReq:
		return "HandshakeReq"
	case Ok:
		return "Ok"
	case InHandshake:
		return "Handshake(" + s.Step.String() + ")"
	default:
		return fmt.Sprintf("Status(%d)", int(s.Kind))
	}
}

func handshake(step HandshakeStep) Status { return Status{Kind: InHandshake, Step: step} }

// hsTransition is one row of the handshake-message transition relation:
// the incoming message type, the status it advances to, and the set of
// prior statuses it is permitted from.
type hsTransition struct {
	msgType HandshakeMsgType
	to      Status
	from    []Status
}

// hsTransitions is the static transition table of spec section 4.2,
// matched in declaration order: the first row whose msgType and from-set
// both match wins. Two rows share the Certificate msgType; the from-sets
// disambiguate them (server half of the exchange complete, or not).
var hsTransitions = []hsTransition{
	{HelloRequest, Status{Kind: HandshakeReq}, []Status{{Kind: Ok}}},
	{ClientHello, handshake(ClientHelloStep), []Status{{Kind: Init}, {Kind: HandshakeReq}}},
	{ServerHello, handshake(ServerHelloStep), []Status{handshake(ClientHelloStep)}},
	{Certificate, handshake(ServerCertificateStep), []Status{handshake(ServerHelloStep)}},
	{ServerKeyXchg, handshake(ServerKeyXchgStep), []Status{
		handshake(ServerHelloStep), handshake(ServerCertificateStep),
	}},
	{CertRequest, handshake(ServerCertificateReqStep), []Status{
		handshake(ServerHelloStep), handshake(ServerCertificateStep), handshake(ServerKeyXchgStep),
	}},
	{ServerHelloDone, handshake(ServerHelloDoneStep), []Status{
		handshake(ServerHelloStep), handshake(ServerCertificateStep),
		handshake(ServerKeyXchgStep), handshake(ServerCertificateReqStep),
	}},
	{Certificate, handshake(ClientCertificateStep), []Status{handshake(ServerHelloDoneStep)}},
	{ClientKeyXchg, handshake(ClientKeyXchgStep), []Status{
		handshake(ServerHelloDoneStep), handshake(ClientCertificateStep),
	}},
	{CertVerify, handshake(ClientCertificateVerifyStep), []Status{handshake(ClientKeyXchgStep)}},
	{Finished, handshake(ClientFinishedStep), []Status{handshake(ClientChangeCipherStep)}},
	{Finished, Status{Kind: Ok}, []Status{handshake(ServerChangeCipherStep)}},
}

func containsStatus(set []Status, s Status) bool {
	for _, c := range set {
		if c == s {
			return true
		}
	}
	return false
}

// UpdateStatusHs advances the status machine on receipt of a handshake
// message of the given type. On success it installs the new status and
// returns nil; on failure it leaves the status untouched and returns an
// *UnexpectedPacketError.
func UpdateStatusHs(cs *ConnectionState, msgType HandshakeMsgType) error {
	for _, t := range hsTransitions {
		if t.msgType == msgType && containsStatus(t.from, cs.status) {
			cs.status = t.to
			return nil
		}
	}
	return &UnexpectedPacketError{Status: cs.status, Descriptor: "handshake:" + msgType.String()}
}

// ccTransition is one row of the ChangeCipherSpec transition relation.
// match is the required value of (isClient == sending); from/to are the
// handshake steps the transition connects.
type ccTransition struct {
	match bool
	from  HandshakeStep
	to    HandshakeStep
}

// ccTransitions encodes spec section 4.2's updateStatusCC rule as a
// table: rows 1-2 are the client's own ChangeCipherSpec event (fires when
// isClient == sending — either the client sending it, or the server
// observing the client send it); row 3 is the server's ChangeCipherSpec
// event (fires when isClient != sending).
var ccTransitions = []ccTransition{
	{true, ClientKeyXchgStep, ClientChangeCipherStep},
	{true, ClientCertificateVerifyStep, ClientChangeCipherStep},
	{false, ClientFinishedStep, ServerChangeCipherStep},
}

// UpdateStatusCC advances the status machine on a ChangeCipherSpec event.
// sending is true when this side is sending the CCS, false when
// receiving it; the role flag disambiguates which of the two valid
// timeline positions applies.
func UpdateStatusCC(cs *ConnectionState, sending bool) error {
	isClient := cs.role == RoleClient
	match := isClient == sending
	if cs.status.Kind == InHandshake {
		for _, t := range ccTransitions {
			if t.match == match && cs.status.Step == t.from {
				cs.status = handshake(t.to)
				return nil
			}
		}
	}
	return &UnexpectedPacketError{
		Status:     cs.status,
		Descriptor: fmt.Sprintf("change_cipher_spec(sending=%v)", sending),
	}
}

// WhileStatus repeatedly invokes action while the status satisfies
// predicate, stopping early if action returns an error.
func WhileStatus(cs *ConnectionState, predicate func(Status) bool, action func() error) error {
	for predicate(cs.Status()) {
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}
