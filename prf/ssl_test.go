package prf

import (
	"testing"

	"github.com/mkobetic/okapi"
	"github.com/stretchr/testify/assert"
)

func TestSslExpand_ProducesRequestedLength(t *testing.T) {
	secret := []byte("pre-master-secret")
	seed := []byte("client-random-server-random")
	out := sslExpand(secret, seed, MasterSecretLength)
	assert.Equal(t, MasterSecretLength, len(out))
}

func TestSSLFinished_ProducesThirtySixBytes(t *testing.T) {
	master := []byte("a-48-byte-master-secret-padded-out-to-len-48.xxx")

	md5ctx := okapi.MD5.New()
	md5ctx.Write([]byte("transcript-so-far"))
	sha1ctx := okapi.SHA1.New()
	sha1ctx.Write([]byte("transcript-so-far"))

	vd := SSLFinished(master, md5ctx, sha1ctx, true)
	assert.Equal(t, 36, len(vd))
}
