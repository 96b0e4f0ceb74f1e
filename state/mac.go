package state

import (
	"github.com/ygale/tlsstate/prf"
	"github.com/ygale/tlsstate/records"
)

// CryptState is the symmetric key material negotiated for one direction
// of a connection: write key, write IV, and MAC secret. Immutable once
// installed for a given epoch.
type CryptState struct {
	Key       []byte
	IV        []byte
	MACSecret []byte
}

// MacState is a per-direction record sequence counter, starting at 0 and
// incremented by one after every successful MakeDigest call in that
// direction.
type MacState struct {
	Sequence uint64
}

// Direction selects which side of the connection (transmit or receive)
// an operation applies to.
type Direction int

const (
	DirectionTx Direction = iota
	DirectionRx
)

func (cs *ConnectionState) cryptFor(dir Direction) *CryptState {
	if dir == DirectionTx {
		return cs.txCrypt
	}
	return cs.rxCrypt
}

func (cs *ConnectionState) macFor(dir Direction) *MacState {
	if dir == DirectionTx {
		return cs.txMac
	}
	return cs.rxMac
}

// MakeDigest computes the record MAC for header/content in the given
// direction, over (sequence || header || content), and advances that
// direction's sequence counter by one. header is encoded here according
// to the negotiated version: without the version field for SSL3.0, with
// it for TLS. Fails with InternalError if the cipher or the direction's
// crypt/mac state are not set.
func MakeDigest(cs *ConnectionState, dir Direction, header records.RecordHeader, content []byte) ([]byte, error) {
	if cs.cipher == nil {
		return nil, &InternalError{Site: "MakeDigest", ViolatedPrecondition: "cipher not set"}
	}
	crypt := cs.cryptFor(dir)
	mac := cs.macFor(dir)
	if crypt == nil || mac == nil {
		return nil, &InternalError{Site: "MakeDigest", ViolatedPrecondition: "direction crypt/mac state not set"}
	}
	if mac.Sequence == 0xFFFFFFFFFFFFFFFF {
		return nil, &InternalError{Site: "MakeDigest", ViolatedPrecondition: "sequence number overflow"}
	}
	seq := records.EncodeWord64(mac.Sequence)

	var msg []byte
	var digest []byte
	if cs.version == records.SSL30 {
		encodedHeader := records.EncodeHeaderNoVersion(header)
		msg = append(append(append([]byte{}, seq...), encodedHeader...), content...)
		digest = prf.SSLMAC(cs.cipher.MAC, crypt.MACSecret, msg)
	} else {
		encodedHeader := records.EncodeHeader(header)
		msg = append(append(append([]byte{}, seq...), encodedHeader...), content...)
		digest = prf.HMAC(cs.cipher.MAC, crypt.MACSecret, msg)
	}

	mac.Sequence++
	return digest, nil
}

// SwitchTxEncryption engages encryption on the transmit direction.
// Idempotent but not reversible within a connection.
func (cs *ConnectionState) SwitchTxEncryption() {
	cs.txEncrypted = true
}

// SwitchRxEncryption engages encryption on the receive direction.
// Idempotent but not reversible within a connection.
func (cs *ConnectionState) SwitchRxEncryption() {
	cs.rxEncrypted = true
}
