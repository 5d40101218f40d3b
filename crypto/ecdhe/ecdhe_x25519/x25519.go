// package ecdhe_x25519 implements ecdhe.Scheme for the x25519 curve.
//
// Montgomery curve points use the raw 32 byte encoding from RFC 7748; any
// 32 byte string is accepted as a point, and contributory misbehavior is
// caught at derivation time instead.
package ecdhe_x25519

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"

	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe"
)

// PublicKey is a raw curve25519 point.
type PublicKey = [curve25519.PointSize]byte

var _ ecdhe.Scheme = Scheme{}

type Scheme struct{}

func (s Scheme) Generate(rng io.Reader) (ecdhe.PrivateKey, error) {
	priv := &privateKey{}
	if _, err := io.ReadFull(rng, priv.scalar[:]); err != nil {
		return nil, errors.Wrap(ecdhe.ErrKeyGeneration, err.Error())
	}
	pub, err := curve25519.X25519(priv.scalar[:], curve25519.Basepoint)
	if err != nil {
		priv.Destroy()
		return nil, errors.Wrap(ecdhe.ErrKeyGeneration, err.Error())
	}
	priv.pub = *(*PublicKey)(pub)
	return priv, nil
}

func (s Scheme) MarshalPoint(dst []byte, pub ecdhe.PublicKey) error {
	p, ok := pub.(PublicKey)
	if !ok {
		return errors.Wrap(ecdhe.ErrSerialize, "not an x25519 point")
	}
	if len(dst) != curve25519.PointSize {
		return errors.Wrapf(ecdhe.ErrSerialize, "HAVE: %d WANT: %d", len(dst), curve25519.PointSize)
	}
	copy(dst, p[:])
	return nil
}

func (s Scheme) ParsePoint(data []byte) (ecdhe.PublicKey, error) {
	if len(data) != curve25519.PointSize {
		return nil, errors.Wrapf(ecdhe.ErrBadPoint, "wrong length %d for x25519 point", len(data))
	}
	return *(*PublicKey)(data), nil
}

func (s Scheme) ComputeShared(priv ecdhe.PrivateKey, pub ecdhe.PublicKey) ([]byte, error) {
	pk, ok := priv.(*privateKey)
	if !ok || pk.destroyed {
		return nil, errors.Wrap(ecdhe.ErrSharedSecret, "private key unusable")
	}
	p, ok := pub.(PublicKey)
	if !ok {
		return nil, errors.Wrap(ecdhe.ErrSharedSecret, "not an x25519 point")
	}
	shared, err := curve25519.X25519(pk.scalar[:], p[:])
	if err != nil {
		return nil, errors.Wrap(ecdhe.ErrSharedSecret, err.Error())
	}
	return shared, nil
}

func (s Scheme) ShareSize() int {
	return curve25519.PointSize
}

type privateKey struct {
	scalar    [curve25519.ScalarSize]byte
	pub       PublicKey
	destroyed bool
}

func (pk *privateKey) Public() ecdhe.PublicKey {
	return pk.pub
}

func (pk *privateKey) Destroy() {
	if pk.destroyed {
		return
	}
	for i := range pk.scalar {
		pk.scalar[i] = 0
	}
	pk.destroyed = true
}
