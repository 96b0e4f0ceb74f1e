package prf

import (
	"testing"

	"github.com/mkobetic/okapi"
	"github.com/stretchr/testify/assert"
	"github.com/ygale/tlsstate/records"
)

func TestMasterSecret_IsDeterministicAndFixedLength(t *testing.T) {
	pre := []byte("pre-master-secret-material")
	cr := []byte("client-random-0123456789012345678901234567890123456789")
	sr := []byte("server-random-0123456789012345678901234567890123456789")

	ms1 := MasterSecret(records.TLS10, pre, cr, sr)
	ms2 := MasterSecret(records.TLS10, pre, cr, sr)
	assert.Equal(t, MasterSecretLength, len(ms1))
	assert.Equal(t, ms1, ms2)
}

func TestMasterSecret_DiffersAcrossVersions(t *testing.T) {
	pre := []byte("pre-master-secret-material")
	cr := []byte("client-random")
	sr := []byte("server-random")

	tls10 := MasterSecret(records.TLS10, pre, cr, sr)
	tls12 := MasterSecret(records.TLS12, pre, cr, sr)
	ssl30 := MasterSecret(records.SSL30, pre, cr, sr)

	assert.NotEqual(t, tls10, tls12)
	assert.NotEqual(t, tls10, ssl30)
	assert.NotEqual(t, tls12, ssl30)
}

func TestKeyBlock_ProducesRequestedLength(t *testing.T) {
	master := []byte("a-48-byte-master-secret-padded-out-to-len-48.xxx")
	cr := []byte("client-random")
	sr := []byte("server-random")

	block := KeyBlock(records.TLS10, master, cr, sr, 104)
	assert.Equal(t, 104, len(block))

	block12 := KeyBlock(records.TLS12, master, cr, sr, 104)
	assert.Equal(t, 104, len(block12))

	sslBlock := KeyBlock(records.SSL30, master, cr, sr, 104)
	assert.Equal(t, 104, len(sslBlock))
}

func TestFinished_TLSLengthIsTwelveBytes(t *testing.T) {
	master := []byte("a-48-byte-master-secret-padded-out-to-len-48.xxx")
	transcriptHash := []byte("some-16-plus-20-byte-digest-stand-in")
	clientVD := Finished(records.TLS10, master, transcriptHash, true)
	serverVD := Finished(records.TLS10, master, transcriptHash, false)
	assert.Equal(t, 12, len(clientVD))
	assert.Equal(t, 12, len(serverVD))
	assert.NotEqual(t, clientVD, serverVD)
}

func TestHMAC_DeterministicOverSameInput(t *testing.T) {
	key := []byte("mac-secret")
	msg := []byte("hello world")
	a := HMAC(okapi.SHA1, key, msg)
	b := HMAC(okapi.SHA1, key, msg)
	assert.Equal(t, a, b)
	assert.Equal(t, 20, len(a))
}

func TestSSLMAC_DeterministicOverSameInput(t *testing.T) {
	key := []byte("mac-secret")
	msg := []byte("hello world")
	a := SSLMAC(okapi.MD5, key, msg)
	b := SSLMAC(okapi.MD5, key, msg)
	assert.Equal(t, a, b)
	assert.Equal(t, 16, len(a))
}
