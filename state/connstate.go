package state

import "github.com/ygale/tlsstate/records"

// Role is a connection's fixed client-or-server identity, set once at
// construction. There is deliberately no default: a zero Role would
// silently behave as a server, which the teacher implementation did and
// which spec.md section 9 flags as a footgun worth avoiding here.
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

func (r Role) String() string {
	if r == RoleClient {
		return "client"
	}
	return "server"
}

// ConnectionState is the single mutable object the handshake status
// machine, key schedule, transcript digests and per-direction record MAC
// state all live on. It is exclusively owned by one driver at a time;
// see spec.md section 5 for the concurrency model this assumes.
type ConnectionState struct {
	role    Role
	version records.ProtocolVersion
	status  Status

	handshakeState *HandshakeState

	txEncrypted bool
	rxEncrypted bool
	txCrypt     *CryptState
	rxCrypt     *CryptState
	txMac       *MacState
	rxMac       *MacState

	cipher *records.CipherSpec

	prng PRNG
}

// NewConnectionState creates a ConnectionState with the given role and
// seed, status Init, version defaulted to TLS1.0, and every optional
// field absent.
func NewConnectionState(role Role, seed int64) *ConnectionState {
	return &ConnectionState{
		role:    role,
		version: records.TLS10,
		status:  Status{Kind: Init},
		prng:    NewPRNG(seed),
	}
}

func (cs *ConnectionState) Role() Role           { return cs.role }
func (cs *ConnectionState) Status() Status       { return cs.status }
func (cs *ConnectionState) Version() records.ProtocolVersion { return cs.version }
func (cs *ConnectionState) Cipher() *records.CipherSpec      { return cs.cipher }
func (cs *ConnectionState) TxEncrypted() bool     { return cs.txEncrypted }
func (cs *ConnectionState) RxEncrypted() bool     { return cs.rxEncrypted }
func (cs *ConnectionState) TxCrypt() *CryptState  { return cs.txCrypt }
func (cs *ConnectionState) RxCrypt() *CryptState  { return cs.rxCrypt }

// HandshakeInProgress reports whether a handshake state is currently
// present, i.e. whether startHandshakeClient has run without a matching
// endHandshake.
func (cs *ConnectionState) HandshakeInProgress() bool {
	return cs.handshakeState != nil
}
