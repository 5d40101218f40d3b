package keyshare

import (
	"golang.org/x/crypto/cryptobyte"
)

const extensionTypeKeyShare uint16 = 51

// Extension is one hello extension. Implementations are stateless; all
// negotiation state lives on the Conn.
type Extension interface {
	// Type is the extension's IANA value.
	Type() uint16
	// ShouldSend reports whether the extension belongs in conn's next hello.
	ShouldSend(conn *Conn) bool
	// Send writes the extension_data payload.
	Send(conn *Conn, b *cryptobyte.Builder) error
	// Receive consumes a peer's extension_data payload.
	Receive(conn *Conn, data []byte) error
}

// sizer is implemented by extensions that can precompute their wire size.
type sizer interface {
	wireSize(conn *Conn) int
}

// MarshalExtension encodes ext for conn: the extension type, then the
// extension_data behind a back-patched length field. Returns nil bytes when
// the extension should not be sent.
func MarshalExtension(conn *Conn, ext Extension) ([]byte, error) {
	if !ext.ShouldSend(conn) {
		return nil, nil
	}
	capacity := 64
	if s, ok := ext.(sizer); ok {
		capacity = s.wireSize(conn)
	}
	b := cryptobyte.NewBuilder(make([]byte, 0, capacity))
	b.AddUint16(ext.Type())
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		if err := ext.Send(conn, b); err != nil {
			panic(cryptobyte.BuildError{Err: err})
		}
	})
	return b.Bytes()
}

// ReceiveExtension feeds a peer's extension_data to ext.
func ReceiveExtension(conn *Conn, ext Extension, data []byte) error {
	return ext.Receive(conn, data)
}
