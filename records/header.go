package records

import "encoding/binary"

// RecordHeader is the 5 byte (or, sans version, 3 byte) prefix carried by
// every TLS record: content type, protocol version, and fragment length.
type RecordHeader struct {
	ContentType ContentType
	Version     ProtocolVersion
	Length      uint16
}

// EncodeHeader renders the full 5 byte record header, version included.
func EncodeHeader(h RecordHeader) []byte {
	b := make([]byte, HeaderSize)
	b[0] = byte(h.ContentType)
	binary.BigEndian.PutUint16(b[1:3], uint16(h.Version))
	binary.BigEndian.PutUint16(b[3:5], h.Length)
	return b
}

// EncodeHeaderNoVersion renders the 3 byte header SSL3.0's MAC input uses:
// content type and length only, the version field is not authenticated.
func EncodeHeaderNoVersion(h RecordHeader) []byte {
	b := make([]byte, HeaderSize-2)
	b[0] = byte(h.ContentType)
	binary.BigEndian.PutUint16(b[1:3], h.Length)
	return b
}

// EncodeWord64 renders v as a big-endian 8 byte sequence number, the form
// every record MAC input begins with.
func EncodeWord64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// EncodeHandshakeHeader renders the 4 byte handshake message header: a one
// byte message type followed by a 24 bit big-endian body length.
func EncodeHandshakeHeader(msgType byte, length int) []byte {
	b := make([]byte, 4)
	b[0] = msgType
	b[1] = byte(length >> 16)
	b[2] = byte(length >> 8)
	b[3] = byte(length)
	return b
}
