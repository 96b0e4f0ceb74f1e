package state

import "github.com/ygale/tlsstate/records"

// StartHandshakeClient begins a new handshake with the given negotiated
// version and client random, installing a fresh HandshakeState with
// every optional field absent and a lazily-populated transcript. If a
// handshake is already in progress this is a no-op: spec.md section 9
// flags the source's equivalent behavior as ambiguous rather than
// guessing at intent; see DESIGN.md for the decision to preserve it.
func (cs *ConnectionState) StartHandshakeClient(version records.ProtocolVersion, clientRandom []byte) {
	if cs.handshakeState != nil {
		return
	}
	cs.handshakeState = &HandshakeState{
		clientVersion: version,
		clientRandom:  clientRandom,
		transcript:    newTranscriptDigests(version),
	}
}

// EndHandshake clears the handshake state unconditionally, releasing the
// transcript hash contexts. The negotiated cipher, version, direction
// keys, MAC states and encryption flags all persist past this call.
func (cs *ConnectionState) EndHandshake() {
	if cs.handshakeState == nil {
		return
	}
	if cs.handshakeState.transcript != nil {
		cs.handshakeState.transcript.close()
	}
	cs.handshakeState = nil
}
