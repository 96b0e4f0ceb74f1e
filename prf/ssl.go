package prf

import (
	"bytes"

	"github.com/mkobetic/okapi"
)

var (
	clientSender = []byte("CLNT")
	serverSender = []byte("SRVR")
)

// sslExpand is the SSL3.0 key material expansion function (RFC 6101
// section 6.1): repeated rounds of MD5(secret || SHA1(label || secret ||
// seed)), label growing "A", "BB", "CCC", ... one letter longer per round.
// Both master-secret and key-block derivation use it, differing only in
// the seed they pass in.
func sslExpand(secret, seed []byte, length int) []byte {
	out := make([]byte, 0, length+16)
	for round := 1; len(out) < length; round++ {
		label := bytes.Repeat([]byte{byte('A' + round - 1)}, round)

		sha1 := okapi.SHA1.New()
		sha1.Write(label)
		sha1.Write(secret)
		sha1.Write(seed)
		inner := sha1.Digest()
		sha1.Close()

		md5 := okapi.MD5.New()
		md5.Write(secret)
		md5.Write(inner)
		out = append(out, md5.Digest()...)
		md5.Close()
	}
	return out[:length]
}

// sslFinished computes SSL3.0's Finished verify_data (RFC 6101 section
// 5.6.8): 36 bytes, the MD5 half followed by the SHA-1 half, each built
// from pad1/pad2 around a snapshot of the handshake transcript. md5ctx
// and sha1ctx must already be snapshots (Clone'd) of the live transcript
// contexts; sslFinished consumes them but never touches the originals.
func sslFinished(masterSecret []byte, md5ctx, sha1ctx okapi.Hash, sender []byte) []byte {
	md5Pad1 := bytes.Repeat([]byte{0x36}, 48)
	md5Pad2 := bytes.Repeat([]byte{0x5c}, 48)
	sha1Pad1 := bytes.Repeat([]byte{0x36}, 40)
	sha1Pad2 := bytes.Repeat([]byte{0x5c}, 40)

	md5ctx.Write(sender)
	md5ctx.Write(masterSecret)
	md5ctx.Write(md5Pad1)
	md5Inner := md5ctx.Digest()
	md5ctx.Close()

	outer := okapi.MD5.New()
	outer.Write(masterSecret)
	outer.Write(md5Pad2)
	outer.Write(md5Inner)
	md5Out := outer.Digest()
	outer.Close()

	sha1ctx.Write(sender)
	sha1ctx.Write(masterSecret)
	sha1ctx.Write(sha1Pad1)
	sha1Inner := sha1ctx.Digest()
	sha1ctx.Close()

	outer = okapi.SHA1.New()
	outer.Write(masterSecret)
	outer.Write(sha1Pad2)
	outer.Write(sha1Inner)
	sha1Out := outer.Digest()
	outer.Close()

	return append(append([]byte{}, md5Out...), sha1Out...)
}
