package state

import (
	"crypto/rsa"

	"github.com/ygale/tlsstate/prf"
	"github.com/ygale/tlsstate/records"
)

// SetServerRandom installs the server's hello random into the
// in-progress handshake state.
func (cs *ConnectionState) SetServerRandom(r []byte) error {
	if cs.handshakeState == nil {
		return &InternalError{Site: "SetServerRandom", ViolatedPrecondition: "no handshake in progress"}
	}
	cs.handshakeState.serverRandom = r
	return nil
}

// SetMasterSecret derives and installs the 48 byte master secret from
// preMaster and both hello randoms. Requires a handshake in progress
// with the server random already set.
func (cs *ConnectionState) SetMasterSecret(preMaster []byte) error {
	hs := cs.handshakeState
	if hs == nil {
		return &InternalError{Site: "SetMasterSecret", ViolatedPrecondition: "no handshake in progress"}
	}
	if hs.serverRandom == nil {
		return &InternalError{Site: "SetMasterSecret", ViolatedPrecondition: "server random not set"}
	}
	hs.masterSecret = prf.MasterSecret(cs.version, preMaster, hs.clientRandom, hs.serverRandom)
	return nil
}

// SetKeyBlock derives the key-expansion key block and partitions it into
// the six per-direction secrets (client/server MAC secret, write key,
// write IV), installing txCrypt/rxCrypt according to role and
// initializing both MacStates at sequence 0. Requires cipher,
// serverRandom and masterSecret all set.
func (cs *ConnectionState) SetKeyBlock() error {
	hs := cs.handshakeState
	if hs == nil {
		return &InternalError{Site: "SetKeyBlock", ViolatedPrecondition: "no handshake in progress"}
	}
	if cs.cipher == nil {
		return &InternalError{Site: "SetKeyBlock", ViolatedPrecondition: "cipher not set"}
	}
	if hs.serverRandom == nil {
		return &InternalError{Site: "SetKeyBlock", ViolatedPrecondition: "server random not set"}
	}
	if hs.masterSecret == nil {
		return &InternalError{Site: "SetKeyBlock", ViolatedPrecondition: "master secret not set"}
	}

	macSize := cs.cipher.MACKeySize
	keySize := cs.cipher.CipherKeySize
	ivSize := cs.cipher.IVSize
	blockSize := 2 * (macSize + keySize + ivSize)

	block := prf.KeyBlock(cs.version, hs.masterSecret, hs.clientRandom, hs.serverRandom, blockSize)
	if len(block) != blockSize {
		return &InternalError{Site: "SetKeyBlock", ViolatedPrecondition: "key block partition failed"}
	}

	offset := 0
	take := func(n int) []byte {
		piece := block[offset : offset+n]
		offset += n
		return piece
	}
	clientMAC := take(macSize)
	serverMAC := take(macSize)
	clientKey := take(keySize)
	serverKey := take(keySize)
	clientIV := take(ivSize)
	serverIV := take(ivSize)

	cstClient := &CryptState{Key: clientKey, IV: clientIV, MACSecret: clientMAC}
	cstServer := &CryptState{Key: serverKey, IV: serverIV, MACSecret: serverMAC}

	if cs.role == RoleClient {
		cs.txCrypt, cs.rxCrypt = cstClient, cstServer
	} else {
		cs.txCrypt, cs.rxCrypt = cstServer, cstClient
	}
	cs.txMac = &MacState{}
	cs.rxMac = &MacState{}
	return nil
}

// SetPublicKey installs the peer's RSA public key. Requires a handshake
// in progress.
func (cs *ConnectionState) SetPublicKey(pub *rsa.PublicKey) error {
	if cs.handshakeState == nil {
		return &InternalError{Site: "SetPublicKey", ViolatedPrecondition: "no handshake in progress"}
	}
	cs.handshakeState.rsaPublicKey = pub
	return nil
}

// SetPrivateKey installs the local RSA private key. Requires a handshake
// in progress.
func (cs *ConnectionState) SetPrivateKey(priv *rsa.PrivateKey) error {
	if cs.handshakeState == nil {
		return &InternalError{Site: "SetPrivateKey", ViolatedPrecondition: "no handshake in progress"}
	}
	cs.handshakeState.rsaPrivateKey = priv
	return nil
}

// SetCipher installs the negotiated cipher suite descriptor. Once set it
// is never cleared for the lifetime of the connection.
func (cs *ConnectionState) SetCipher(spec records.CipherSpec) {
	cs.cipher = &spec
}

// SetVersion installs the negotiated protocol version.
func (cs *ConnectionState) SetVersion(v records.ProtocolVersion) {
	cs.version = v
}
