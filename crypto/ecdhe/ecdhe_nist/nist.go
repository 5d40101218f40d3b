// package ecdhe_nist implements ecdhe.Scheme for the NIST Weierstrass curves.
//
// Points use the uncompressed SEC1 encoding 0x04 || X || Y. ParsePoint
// rejects anything that is not a legitimate point on the scheme's curve;
// accepting unvalidated points would open an invalid-curve attack.
package ecdhe_nist

import (
	"crypto/ecdh"
	"io"

	"github.com/pkg/errors"

	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe"
)

var _ ecdhe.Scheme = Scheme{}

// Scheme binds the family implementation to one curve's domain parameters.
type Scheme struct {
	curve     ecdh.Curve
	name      string
	pointSize int
}

// NewP256 returns the scheme for secp256r1. Encoded points are 65 bytes.
func NewP256() Scheme {
	return Scheme{curve: ecdh.P256(), name: "secp256r1", pointSize: 65}
}

// NewP384 returns the scheme for secp384r1. Encoded points are 97 bytes.
func NewP384() Scheme {
	return Scheme{curve: ecdh.P384(), name: "secp384r1", pointSize: 97}
}

func (s Scheme) Generate(rng io.Reader) (ecdhe.PrivateKey, error) {
	key, err := s.curve.GenerateKey(rng)
	if err != nil {
		return nil, errors.Wrap(ecdhe.ErrKeyGeneration, err.Error())
	}
	if key.Curve() != s.curve {
		return nil, errors.Wrapf(ecdhe.ErrKeyGeneration, "generated key is not on %s", s.name)
	}
	return &privateKey{key: key}, nil
}

func (s Scheme) MarshalPoint(dst []byte, pub ecdhe.PublicKey) error {
	p, ok := pub.(*ecdh.PublicKey)
	if !ok {
		return errors.Wrapf(ecdhe.ErrSerialize, "not a %s point", s.name)
	}
	raw := p.Bytes()
	if len(raw) != s.pointSize {
		return errors.Wrapf(ecdhe.ErrSerialize, "HAVE: %d WANT: %d", len(raw), s.pointSize)
	}
	if len(dst) != s.pointSize {
		return errors.Wrapf(ecdhe.ErrSerialize, "HAVE: %d WANT: %d", len(dst), s.pointSize)
	}
	copy(dst, raw)
	return nil
}

func (s Scheme) ParsePoint(data []byte) (ecdhe.PublicKey, error) {
	if len(data) != s.pointSize {
		return nil, errors.Wrapf(ecdhe.ErrBadPoint, "wrong length %d for %s point", len(data), s.name)
	}
	pub, err := s.curve.NewPublicKey(data)
	if err != nil {
		return nil, errors.Wrapf(ecdhe.ErrBadPoint, "%s: %v", s.name, err)
	}
	return pub, nil
}

func (s Scheme) ComputeShared(priv ecdhe.PrivateKey, pub ecdhe.PublicKey) ([]byte, error) {
	pk, ok := priv.(*privateKey)
	if !ok || pk.key == nil {
		return nil, errors.Wrap(ecdhe.ErrSharedSecret, "private key unusable")
	}
	p, ok := pub.(*ecdh.PublicKey)
	if !ok {
		return nil, errors.Wrapf(ecdhe.ErrSharedSecret, "not a %s point", s.name)
	}
	shared, err := pk.key.ECDH(p)
	if err != nil {
		return nil, errors.Wrap(ecdhe.ErrSharedSecret, err.Error())
	}
	return shared, nil
}

func (s Scheme) ShareSize() int {
	return s.pointSize
}

type privateKey struct {
	key *ecdh.PrivateKey
}

func (pk *privateKey) Public() ecdhe.PublicKey {
	if pk.key == nil {
		return nil
	}
	return pk.key.PublicKey()
}

// Destroy drops the reference to the underlying key. crypto/ecdh keys cannot
// be zeroed in place, so reclamation is left to the garbage collector.
func (pk *privateKey) Destroy() {
	pk.key = nil
}
