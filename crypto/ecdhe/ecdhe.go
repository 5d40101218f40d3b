// package ecdhe provides ephemeral elliptic curve Diffie-Hellman over the
// named curves used by TLS 1.3 key shares.
package ecdhe

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrKeyGeneration is returned when the underlying curve cannot produce a key pair.
	ErrKeyGeneration = errors.New("ecdhe: key generation failed")
	// ErrSharedSecret is returned when derivation is rejected by the underlying curve.
	ErrSharedSecret = errors.New("ecdhe: could not compute shared secret")
	// ErrSerialize is returned when a public point cannot be encoded for the wire.
	ErrSerialize = errors.New("ecdhe: could not serialize point")
	// ErrBadPoint is returned for a point encoding that is the wrong length,
	// malformed, or not on the curve.
	ErrBadPoint = errors.New("ecdhe: invalid point encoding")
)

// PublicKey is a validated public point, bound to the Scheme that parsed or
// generated it.
type PublicKey interface{}

// PrivateKey is an ephemeral key pair for a single curve.
// It exclusively owns the private material; the owner calls Destroy exactly
// once when the key is no longer needed, though extra calls are harmless.
type PrivateKey interface {
	// Public returns the key's public half.
	Public() PublicKey
	// Destroy releases the private material. Calling Destroy on an already
	// destroyed key is a no-op. A destroyed key fails all further operations.
	Destroy()
}

// Scheme provides ephemeral key agreement over one named curve.
// Implementations exist per curve family, so callers never branch on how a
// family encodes its points or generates its keys.
type Scheme interface {
	// Generate creates an ephemeral key pair using entropy from rng.
	Generate(rng io.Reader) (PrivateKey, error)

	// MarshalPoint writes the wire encoding of pub into dst.
	// dst must be exactly ShareSize() bytes.
	MarshalPoint(dst []byte, pub PublicKey) error
	// ParsePoint validates data as a public point on the curve.
	// data must be exactly ShareSize() bytes; anything that is not a
	// legitimate point is rejected with ErrBadPoint.
	ParsePoint(data []byte) (PublicKey, error)

	// ComputeShared derives the raw ECDH output from priv and pub.
	ComputeShared(priv PrivateKey, pub PublicKey) ([]byte, error)

	// ShareSize is the exact length of the wire encoding of a public point.
	ShareSize() int
}
