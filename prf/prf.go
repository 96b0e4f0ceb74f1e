// Package prf implements the PRF, master-secret, key-block and Finished
// derivations that the records package's cipher/MAC primitives are fed with. These
// are the "consumed from the cipher/hash/PRF external module" boundary
// functions; no such module ships upstream, so they live here, built on
// the same okapi hash/HMAC primitives records already imports.
package prf

import (
	"github.com/mkobetic/okapi"
	"github.com/ygale/tlsstate/records"
)

const (
	MasterSecretLength = 48
)

var (
	masterSecretLabel = []byte("master secret")
	keyExpansionLabel = []byte("key expansion")
	clientFinishedLabel = []byte("client finished")
	serverFinishedLabel = []byte("server finished")
)

// pHash is RFC 5246 section 5's P_hash: the HMAC-driven expansion function
// shared by the TLS1.0/1.1 split PRF and the TLS1.2 SHA-256 PRF.
func pHash(spec okapi.HashSpec, secret, seed []byte, length int) []byte {
	mac := okapi.HMAC.New(spec, secret)
	defer mac.Close()
	out := make([]byte, 0, length+mac.Size())
	a := append([]byte{}, seed...)
	for len(out) < length {
		mac.Write(a)
		a = append([]byte{}, mac.Digest()...)
		mac.Reset()
		mac.Write(a)
		mac.Write(seed)
		out = append(out, mac.Digest()...)
		mac.Reset()
	}
	return out[:length]
}

// xor writes a XOR b into a new slice the length of a; b must be at least
// as long as a.
func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// splitSecret halves secret the way RFC 2246 section 5 requires for the
// dual MD5/SHA-1 PRF: both halves are ceil(len/2) long, sharing the middle
// byte when the length is odd.
func splitSecret(secret []byte) (s1, s2 []byte) {
	half := (len(secret) + 1) / 2
	return secret[:half], secret[len(secret)-half:]
}

// prf10 is the TLS 1.0/1.1 PRF: P_MD5 XOR'd with P_SHA1 over matching
// secret halves.
func prf10(secret, label, seed []byte, length int) []byte {
	s1, s2 := splitSecret(secret)
	seedWithLabel := append(append([]byte{}, label...), seed...)
	md5Out := pHash(okapi.MD5, s1, seedWithLabel, length)
	sha1Out := pHash(okapi.SHA1, s2, seedWithLabel, length)
	return xor(md5Out, sha1Out)
}

// prf12 is the TLS 1.2 PRF: P_hash with SHA-256, no secret splitting.
func prf12(secret, label, seed []byte, length int) []byte {
	seedWithLabel := append(append([]byte{}, label...), seed...)
	return pHash(okapi.SHA256, secret, seedWithLabel, length)
}

// PRF dispatches to the version-appropriate PRF construction. SSL3.0 does
// not use this entry point; its master-secret/key-block derivation goes
// through sslExpand instead (see ssl.go), and its Finished computation
// through sslFinished.
func PRF(version records.ProtocolVersion, secret, label, seed []byte, length int) []byte {
	if version == records.TLS12 {
		return prf12(secret, label, seed, length)
	}
	return prf10(secret, label, seed, length)
}

// MasterSecret derives the 48 byte master secret from a pre-master secret
// and both hello randoms, per RFC 5246 section 8.1 (and RFC 6101 section
// 6.1 for SSL3.0, via sslExpand).
func MasterSecret(version records.ProtocolVersion, preMaster, clientRandom, serverRandom []byte) []byte {
	seed := append(append([]byte{}, clientRandom...), serverRandom...)
	if version == records.SSL30 {
		return sslExpand(preMaster, seed, MasterSecretLength)
	}
	return PRF(version, preMaster, masterSecretLabel, seed, MasterSecretLength)
}

// KeyBlock derives the key-expansion material the key schedule partitions
// into per-direction MAC secrets, write keys and write IVs.
func KeyBlock(version records.ProtocolVersion, masterSecret, clientRandom, serverRandom []byte, size int) []byte {
	seed := append(append([]byte{}, serverRandom...), clientRandom...)
	if version == records.SSL30 {
		return sslExpand(masterSecret, seed, size)
	}
	return PRF(version, masterSecret, keyExpansionLabel, seed, size)
}

// Finished computes the verify_data a TLS handshake's Finished message
// carries, for the requested sender, from the already-digested
// transcript hash (MD5||SHA-1 for TLS1.0/1.1, SHA-256 for TLS1.2). The
// caller is responsible for taking that digest off a snapshot of its
// running transcript contexts, never the live ones, which is what keeps
// repeated calls idempotent per spec.md 4.7.
func Finished(version records.ProtocolVersion, masterSecret, transcriptHash []byte, forClient bool) []byte {
	label := serverFinishedLabel
	if forClient {
		label = clientFinishedLabel
	}
	return PRF(version, masterSecret, label, transcriptHash, 12)
}

// SSLFinished computes SSL3.0's Finished verify_data. Unlike Finished, it
// needs live hash contexts rather than a plain digest because the SSL3.0
// construction feeds additional material (sender label, master secret,
// pad) into the hash state itself. md5ctx/sha1ctx must be clones of the
// running transcript contexts; SSLFinished consumes (and closes) them.
func SSLFinished(masterSecret []byte, md5ctx, sha1ctx okapi.Hash, forClient bool) []byte {
	sender := serverSender
	if forClient {
		sender = clientSender
	}
	return sslFinished(masterSecret, md5ctx, sha1ctx, sender)
}
