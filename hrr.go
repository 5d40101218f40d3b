package keyshare

import (
	"bytes"
)

// helloRetryRequestRandom is the value a HelloRetryRequest carries in the
// ServerHello random field. From RFC 8446 §4.1.3.
var helloRetryRequestRandom = [randomSize]byte{
	0xCF, 0x21, 0xAD, 0x74, 0xE5, 0x9A, 0x61, 0x11, 0xBE, 0x1D, 0x8C, 0x02, 0x1E, 0x65, 0xB8, 0x91,
	0xC2, 0xA2, 0x11, 0x16, 0x7A, 0xBB, 0x8C, 0x5E, 0x07, 0x9E, 0x09, 0xE2, 0xC8, 0xA8, 0x33, 0x9C,
}

// IsHelloRetryRequest reports whether random is the HelloRetryRequest
// sentinel, which marks the next ClientHello as a retry flight.
func IsHelloRetryRequest(random []byte) bool {
	return bytes.Equal(random, helloRetryRequestRandom[:])
}

// isHelloRetry reports whether this connection has seen the sentinel.
func (c *Conn) isHelloRetry() bool {
	return c.haveServerRandom && IsHelloRetryRequest(c.serverRandom[:])
}

// IsHelloRetryValid reports whether a received HelloRetryRequest is
// acceptable: the sentinel random, on a TLS 1.3 connection.
func (c *Conn) IsHelloRetryValid() bool {
	return c.version >= VersionTLS13 && c.isHelloRetry()
}
