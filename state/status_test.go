package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ygale/tlsstate/records"
)

func TestStatus_ClientFullHandshake(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	cs.StartHandshakeClient(0, []byte("client-random"))

	assert.Nil(t, UpdateStatusHs(cs, ClientHello))
	assert.Equal(t, handshake(ClientHelloStep), cs.Status())

	assert.Nil(t, UpdateStatusHs(cs, ServerHello))
	assert.Nil(t, UpdateStatusHs(cs, Certificate))
	assert.Nil(t, UpdateStatusHs(cs, ServerHelloDone))
	assert.Equal(t, handshake(ServerHelloDoneStep), cs.Status())

	assert.Nil(t, cs.SetServerRandom([]byte("server-random")))
	assert.Nil(t, cs.SetPublicKey(nil))
	cs.SetCipher(records.NULL_MD5)

	assert.Nil(t, UpdateStatusHs(cs, ClientKeyXchg))
	assert.Equal(t, handshake(ClientKeyXchgStep), cs.Status())

	assert.Nil(t, cs.SetMasterSecret([]byte("pre-master-secret-48-bytes-pad-it-out-fully.xxxx")))
	assert.Nil(t, cs.SetKeyBlock())

	assert.Nil(t, UpdateStatusCC(cs, true))
	assert.Equal(t, handshake(ClientChangeCipherStep), cs.Status())
	cs.SwitchTxEncryption()
	assert.True(t, cs.TxEncrypted())

	assert.Nil(t, UpdateStatusHs(cs, Finished))
	assert.Equal(t, handshake(ClientFinishedStep), cs.Status())

	assert.Nil(t, UpdateStatusCC(cs, false))
	assert.Equal(t, handshake(ServerChangeCipherStep), cs.Status())
	cs.SwitchRxEncryption()
	assert.True(t, cs.RxEncrypted())

	assert.Nil(t, UpdateStatusHs(cs, Finished))
	assert.Equal(t, Status{Kind: Ok}, cs.Status())
}

func TestStatus_UnexpectedServerHelloInInit(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	err := UpdateStatusHs(cs, ServerHello)
	assert.Error(t, err)
	assert.Equal(t, Status{Kind: Init}, cs.Status())
	upe, ok := err.(*UnexpectedPacketError)
	assert.True(t, ok)
	assert.Equal(t, Status{Kind: Init}, upe.Status)
}

func TestStatus_HelloRequestInInitFails(t *testing.T) {
	cs := NewConnectionState(RoleServer, 1)
	err := UpdateStatusHs(cs, HelloRequest)
	assert.Error(t, err)
	assert.Equal(t, Status{Kind: Init}, cs.Status())
}

func TestStatus_TransitionFailureLeavesStatusUnchanged(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	assert.Nil(t, UpdateStatusHs(cs, ClientHello))
	before := cs.Status()
	err := UpdateStatusHs(cs, Finished)
	assert.Error(t, err)
	assert.Equal(t, before, cs.Status())
}

func TestStatus_CertificateDisambiguatedByPriorStatus(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	assert.Nil(t, UpdateStatusHs(cs, ClientHello))
	assert.Nil(t, UpdateStatusHs(cs, ServerHello))
	assert.Nil(t, UpdateStatusHs(cs, Certificate))
	assert.Equal(t, handshake(ServerCertificateStep), cs.Status())

	assert.Nil(t, UpdateStatusHs(cs, ServerHelloDone))
	assert.Nil(t, UpdateStatusHs(cs, Certificate))
	assert.Equal(t, handshake(ClientCertificateStep), cs.Status())
}

func TestStatus_ChangeCipherSpecServerSideOfClientEvent(t *testing.T) {
	// A server tracking the client's own ChangeCipherSpec observes it as
	// sending=false (receiving the peer's CCS); isClient==sending should
	// still evaluate true because neither is true.
	cs := NewConnectionState(RoleServer, 1)
	cs.StartHandshakeClient(0, nil) // drive status directly for the test
	cs.status = handshake(ClientKeyXchgStep)
	assert.Nil(t, UpdateStatusCC(cs, false))
	assert.Equal(t, handshake(ClientChangeCipherStep), cs.Status())
}

func TestStatus_ChangeCipherSpecWrongStepFails(t *testing.T) {
	cs := NewConnectionState(RoleClient, 1)
	cs.status = handshake(ServerHelloStep)
	err := UpdateStatusCC(cs, true)
	assert.Error(t, err)
}
