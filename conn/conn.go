// Package conn illustrates the "external record dispatcher" spec.md
// section 2 describes: a minimal wiring of a *state.ConnectionState to a
// records.Reader/records.Writer pair, showing the handful of calls a
// real socket loop makes around a ChangeCipherSpec. It does no socket
// I/O, alert handling or certificate validation; those stay external per
// the Non-goals.
package conn

import (
	"io"

	"github.com/ygale/tlsstate/records"
	"github.com/ygale/tlsstate/state"
)

// Conn binds a connection's state-machine core to the record layer that
// frames bytes on the wire.
type Conn struct {
	State  *state.ConnectionState
	Reader *records.Reader
	Writer *records.Writer
}

// New wires a fresh Conn around the given transport, in the given role.
func New(transport io.ReadWriter, role state.Role, seed int64) *Conn {
	return &Conn{
		State:  state.NewConnectionState(role, seed),
		Reader: records.NewReader(transport, nil),
		Writer: records.NewWriter(transport, nil),
	}
}

// EngageSend advances the status machine for an outbound ChangeCipherSpec
// and then reconfigures the Writer with the freshly derived transmit
// key material, engaging encryption on this direction from the next
// record onward.
func (c *Conn) EngageSend(random []byte) error {
	if err := state.UpdateStatusCC(c.State, true); err != nil {
		return err
	}
	c.State.SwitchTxEncryption()
	cipher := c.State.Cipher()
	crypt := c.State.TxCrypt()
	return c.Writer.SetCipher(*cipher, c.State.Version(), crypt.Key, crypt.IV, crypt.MACSecret, nil)
}

// EngageReceive advances the status machine for an inbound
// ChangeCipherSpec and then reconfigures the Reader with the freshly
// derived receive key material, engaging encryption on this direction
// from the next record onward.
func (c *Conn) EngageReceive() error {
	if err := state.UpdateStatusCC(c.State, false); err != nil {
		return err
	}
	c.State.SwitchRxEncryption()
	cipher := c.State.Cipher()
	crypt := c.State.RxCrypt()
	return c.Reader.SetCipher(*cipher, c.State.Version(), crypt.Key, crypt.IV, crypt.MACSecret)
}
