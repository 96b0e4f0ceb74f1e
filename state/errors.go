package state

import "fmt"

// UnexpectedPacketError reports that an incoming handshake message type
// or ChangeCipherSpec is not permitted from the current status.
type UnexpectedPacketError struct {
	Status     Status
	Descriptor string
}

func (e *UnexpectedPacketError) Error() string {
	return fmt.Sprintf("unexpected packet %s from status %s", e.Descriptor, e.Status)
}

// InternalError reports that a caller invoked an operation whose
// preconditions are not satisfied: a programming error in the
// dispatcher, never a protocol error.
type InternalError struct {
	Site                 string
	ViolatedPrecondition string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Site, e.ViolatedPrecondition)
}
