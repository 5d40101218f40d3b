// Package keyshare implements the TLS 1.3 key_share extension: the curve
// catalog, ephemeral ECDHE key generation per curve, and the two-round
// client/server share negotiation including HelloRetryRequest handling.
package keyshare

import (
	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe"
	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe/ecdhe_nist"
	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe/ecdhe_x25519"
)

// Named group identifiers from the IANA TLS registry.
const (
	GroupSECP256R1 uint16 = 23
	GroupSECP384R1 uint16 = 24
	GroupX25519    uint16 = 29
)

// NamedCurve is one supported elliptic curve group.
// Curves are process-wide constants; never mutate one.
type NamedCurve struct {
	// ID is the group's IANA identifier.
	ID uint16
	// Name is the curve's registry name.
	Name string
	// ShareSize is the exact length of the curve's encoded public point:
	// 32 raw bytes for Montgomery curves, 1 + 2*fieldSize for the
	// uncompressed encoding of Weierstrass curves.
	ShareSize int
	// Scheme performs key generation, point encoding, and derivation.
	Scheme ecdhe.Scheme
}

var (
	CurveSECP256R1 = &NamedCurve{ID: GroupSECP256R1, Name: "secp256r1", ShareSize: 65, Scheme: ecdhe_nist.NewP256()}
	CurveSECP384R1 = &NamedCurve{ID: GroupSECP384R1, Name: "secp384r1", ShareSize: 97, Scheme: ecdhe_nist.NewP384()}
	CurveX25519    = &NamedCurve{ID: GroupX25519, Name: "x25519", ShareSize: 32, Scheme: ecdhe_x25519.Scheme{}}
)

// SupportedCurves is every curve the catalog knows.
var SupportedCurves = []*NamedCurve{
	CurveSECP256R1,
	CurveSECP384R1,
	CurveX25519,
}
