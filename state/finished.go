package state

import (
	"github.com/ygale/tlsstate/prf"
	"github.com/ygale/tlsstate/records"
)

// GetHandshakeDigest computes the Finished message verify_data for the
// requested sender. It snapshots the running transcript digests rather
// than mutating them, so calling it twice in a row yields identical
// bytes (spec.md 4.7's Finished-idempotence property) and the other side
// can still add this Finished to its own transcript afterwards.
// Requires a handshake in progress with transcript digests and the
// master secret both set.
func GetHandshakeDigest(cs *ConnectionState, forClient bool) ([]byte, error) {
	hs := cs.handshakeState
	if hs == nil {
		return nil, &InternalError{Site: "GetHandshakeDigest", ViolatedPrecondition: "no handshake in progress"}
	}
	if hs.transcript == nil || (hs.transcript.md5 == nil && hs.transcript.sha256 == nil) {
		return nil, &InternalError{Site: "GetHandshakeDigest", ViolatedPrecondition: "transcript digests not set"}
	}
	if hs.masterSecret == nil {
		return nil, &InternalError{Site: "GetHandshakeDigest", ViolatedPrecondition: "master secret not set"}
	}

	if cs.version == records.SSL30 {
		md5ctx, sha1ctx := hs.transcript.clones()
		return prf.SSLFinished(hs.masterSecret, md5ctx, sha1ctx, forClient), nil
	}
	return prf.Finished(cs.version, hs.masterSecret, hs.transcript.digest(), forClient), nil
}
