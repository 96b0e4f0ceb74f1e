package state

import (
	"crypto/rsa"

	"github.com/mkobetic/okapi"
	"github.com/ygale/tlsstate/records"
)

// HandshakeState holds everything the key schedule and transcript need
// while a handshake is in progress. It is present exactly between
// StartHandshakeClient and EndHandshake; outside that window it is nil
// on the owning ConnectionState.
type HandshakeState struct {
	clientVersion records.ProtocolVersion
	clientRandom  []byte
	serverRandom  []byte
	masterSecret  []byte
	rsaPublicKey  *rsa.PublicKey
	rsaPrivateKey *rsa.PrivateKey
	transcript    *TranscriptDigests
}

// TranscriptDigests carries the running hash(es) of the handshake
// transcript. Per spec.md section 9's design note, the set of hashes is
// extensible and keyed by negotiated version rather than hardcoded to
// always carry MD5+SHA-1: TLS1.2 only ever needs SHA-256, so that is all
// that gets populated for it. Both kinds are populated lazily, on first
// update.
type TranscriptDigests struct {
	version records.ProtocolVersion
	md5     okapi.Hash
	sha1    okapi.Hash
	sha256  okapi.Hash
}

func newTranscriptDigests(version records.ProtocolVersion) *TranscriptDigests {
	return &TranscriptDigests{version: version}
}

func (t *TranscriptDigests) write(b []byte) {
	if t.version == records.TLS12 {
		if t.sha256 == nil {
			t.sha256 = okapi.SHA256.New()
		}
		t.sha256.Write(b)
		return
	}
	if t.md5 == nil {
		t.md5 = okapi.MD5.New()
	}
	if t.sha1 == nil {
		t.sha1 = okapi.SHA1.New()
	}
	t.md5.Write(b)
	t.sha1.Write(b)
}

// digest snapshots the current transcript hash without mutating the
// running contexts: MD5||SHA-1 concatenated below TLS1.2, plain SHA-256
// at TLS1.2. Used by the TLS Finished construction.
func (t *TranscriptDigests) digest() []byte {
	if t.version == records.TLS12 {
		clone := t.sha256.Clone()
		defer clone.Close()
		return clone.Digest()
	}
	md5Clone := t.md5.Clone()
	defer md5Clone.Close()
	sha1Clone := t.sha1.Clone()
	defer sha1Clone.Close()
	return append(md5Clone.Digest(), sha1Clone.Digest()...)
}

// clones returns fresh clones of the MD5 and SHA-1 contexts for the
// SSL3.0 Finished construction, which needs to keep writing into them.
// The caller owns (and must Close) the returned contexts.
func (t *TranscriptDigests) clones() (md5ctx, sha1ctx okapi.Hash) {
	return t.md5.Clone(), t.sha1.Clone()
}

func (t *TranscriptDigests) close() {
	if t.md5 != nil {
		t.md5.Close()
	}
	if t.sha1 != nil {
		t.sha1.Close()
	}
	if t.sha256 != nil {
		t.sha256.Close()
	}
}

// IncludeInTranscript implements finishHandshakeTypeMaterial: whether a
// handshake message of the given type belongs in the running transcript
// digest. HelloRequest and CertVerify are excluded; everything else the
// status machine recognizes is included.
func IncludeInTranscript(t HandshakeMsgType) bool {
	switch t {
	case HelloRequest, CertVerify:
		return false
	case ClientHello, ServerHello, Certificate, ServerHelloDone,
		ClientKeyXchg, ServerKeyXchg, CertRequest, Finished:
		return true
	default:
		return false
	}
}

// UpdateHandshakeDigest appends bytes verbatim to the running transcript
// digest(s). Requires a handshake in progress.
func (cs *ConnectionState) UpdateHandshakeDigest(b []byte) error {
	if cs.handshakeState == nil {
		return &InternalError{Site: "UpdateHandshakeDigest", ViolatedPrecondition: "no handshake in progress"}
	}
	cs.handshakeState.transcript.write(b)
	return nil
}

// UpdateHandshakeDigestSplitted appends the 4 byte handshake header
// followed by body: the receiver-side counterpart to
// UpdateHandshakeDigest, used when only the parsed body (not the
// original encoded header) is on hand.
func (cs *ConnectionState) UpdateHandshakeDigestSplitted(msgType HandshakeMsgType, body []byte) error {
	header := records.EncodeHandshakeHeader(byte(msgType), len(body))
	return cs.UpdateHandshakeDigest(append(header, body...))
}
