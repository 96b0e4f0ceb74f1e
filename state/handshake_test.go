package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ygale/tlsstate/records"
)

func TestTranscript_SplitEquivalentToManualHeader(t *testing.T) {
	body := []byte("client-hello-body")

	split := NewConnectionState(RoleClient, 1)
	split.StartHandshakeClient(records.TLS10, nil)
	assert.Nil(t, split.UpdateHandshakeDigestSplitted(ClientHello, body))

	manual := NewConnectionState(RoleClient, 1)
	manual.StartHandshakeClient(records.TLS10, nil)
	header := records.EncodeHandshakeHeader(byte(ClientHello), len(body))
	assert.Nil(t, manual.UpdateHandshakeDigest(append(header, body...)))

	assert.Equal(t, manual.handshakeState.transcript.digest(), split.handshakeState.transcript.digest())
}

func TestTranscript_ExcludesHelloRequestAndCertVerify(t *testing.T) {
	assert.False(t, IncludeInTranscript(HelloRequest))
	assert.False(t, IncludeInTranscript(CertVerify))
	assert.True(t, IncludeInTranscript(ClientHello))
	assert.True(t, IncludeInTranscript(Finished))
}

func TestTranscript_TLS12UsesSingleHash(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	cs.SetVersion(records.TLS12)
	cs.StartHandshakeClient(records.TLS12, nil)
	assert.Nil(t, cs.UpdateHandshakeDigest([]byte("hello")))
	assert.NotNil(t, cs.handshakeState.transcript.sha256)
	assert.Nil(t, cs.handshakeState.transcript.md5)
}

func TestTranscript_RequiresHandshakeInProgress(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	err := cs.UpdateHandshakeDigest([]byte("x"))
	assert.Error(t, err)
}

func TestGetHandshakeDigest_Idempotent(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	cs.SetVersion(records.TLS10)
	cs.StartHandshakeClient(records.TLS10, []byte("cr"))
	assert.Nil(t, cs.SetServerRandom([]byte("sr")))
	assert.Nil(t, cs.SetMasterSecret([]byte("pre-master")))
	assert.Nil(t, cs.UpdateHandshakeDigest([]byte("client-hello-bytes")))

	first, err := GetHandshakeDigest(cs, true)
	assert.Nil(t, err)
	second, err := GetHandshakeDigest(cs, true)
	assert.Nil(t, err)
	assert.Equal(t, first, second)

	// The transcript can still accept more material afterwards: Finished
	// must not have consumed the running contexts.
	assert.Nil(t, cs.UpdateHandshakeDigest([]byte("more-bytes")))
}

func TestHandshakeLifecycle_PresenceWindow(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	assert.False(t, cs.HandshakeInProgress())
	cs.StartHandshakeClient(records.TLS10, []byte("cr"))
	assert.True(t, cs.HandshakeInProgress())
	cs.EndHandshake()
	assert.False(t, cs.HandshakeInProgress())
}

func TestHandshakeLifecycle_DoubleStartIsNoOp(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	cs.StartHandshakeClient(records.TLS10, []byte("first"))
	cs.StartHandshakeClient(records.TLS11, []byte("second"))
	assert.Equal(t, []byte("first"), cs.handshakeState.clientRandom)
}
