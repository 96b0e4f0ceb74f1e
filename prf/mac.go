package prf

import (
	"github.com/mkobetic/okapi"
	"github.com/ygale/tlsstate/records"
)

// HMAC is the "consumed from the cipher/hash/PRF external module" hmac
// boundary function: one-shot HMAC over msg under key, using the hash
// okapi.HashSpec negotiated for the connection's MAC.
func HMAC(hash okapi.HashSpec, key, msg []byte) []byte {
	mac := okapi.HMAC.New(hash, key)
	defer mac.Close()
	mac.Write(msg)
	return mac.Digest()
}

// SSLMAC is the SSL3.0 macSSL boundary function, delegating to the same
// non-standard MAC construction the record layer uses for SSL3.0 records.
func SSLMAC(hash okapi.HashSpec, key, msg []byte) []byte {
	mac := records.NewSSL30MAC(hash, key)
	defer mac.Close()
	mac.Write(msg)
	return mac.Digest()
}
