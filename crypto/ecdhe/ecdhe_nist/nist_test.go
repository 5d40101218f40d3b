package ecdhe_nist

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe"
)

func TestP256(t *testing.T) {
	ecdhe.TestScheme(t, NewP256())
}

func TestP384(t *testing.T) {
	ecdhe.TestScheme(t, NewP384())
}

func TestRejectOffCurvePoint(t *testing.T) {
	for _, s := range []Scheme{NewP256(), NewP384()} {
		t.Run(s.name, func(t *testing.T) {
			// (0, 1) is not on either curve: y^2 != x^3 - 3x + b for x=0, y=1.
			data := make([]byte, s.ShareSize())
			data[0] = 4
			data[len(data)-1] = 1
			_, err := s.ParsePoint(data)
			require.ErrorIs(t, err, ecdhe.ErrBadPoint)
		})
	}
}

func TestRejectNonUncompressedEncoding(t *testing.T) {
	s := NewP256()
	rng := mrand.New(mrand.NewSource(0))
	priv, err := s.Generate(rng)
	require.NoError(t, err)

	data := make([]byte, s.ShareSize())
	require.NoError(t, s.MarshalPoint(data, priv.Public()))
	require.Equal(t, byte(4), data[0])

	// Same coordinates behind a compressed-form tag are not a valid share.
	data[0] = 2
	_, err = s.ParsePoint(data)
	require.ErrorIs(t, err, ecdhe.ErrBadPoint)
}
