package keyshare

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/brendoncarroll/go-keyshare/crypto/ecdhe"
)

const randomSize = 32

// Slot holds the key exchange state for one curve position. A slot
// exclusively owns its key material; it is only mutated by the connection
// that holds it.
type Slot struct {
	// Curve is nil until a curve has been negotiated into the slot.
	Curve *NamedCurve
	// Local is this side's ephemeral key pair, if one was generated.
	Local ecdhe.PrivateKey
	// Remote is the peer's validated public point, if one was received.
	Remote ecdhe.PublicKey
}

// Release frees any key material and empties the slot. Releasing an empty
// slot is a no-op, so no caller can double-release.
func (s *Slot) Release() {
	if s.Local != nil {
		s.Local.Destroy()
		s.Local = nil
	}
	s.Remote = nil
	s.Curve = nil
}

// AdoptParams copies the curve's domain parameters from another slot, so
// this slot can validate and hold points for that curve. Private material is
// never copied. Both slots must already agree on the intended curve.
func (s *Slot) AdoptParams(from *Slot) error {
	if s.Curve == nil || from.Curve == nil || s.Curve.ID != from.Curve.ID {
		return errors.Wrap(ErrUnsupportedCurve, "adopt params")
	}
	s.Curve = from.Curve
	return nil
}

// Conn is the key share state for a single connection. A Conn is not safe
// for concurrent use; the handshake driver owns it.
type Conn struct {
	config *Config
	prefs  *Preferences
	rand   io.Reader
	log    *logrus.Logger

	version          uint16
	serverRandom     [randomSize]byte
	haveServerRandom bool

	// clientShares has one slot per preference list position. On the client
	// they hold generated key pairs, on the server the received points.
	clientShares []Slot
	// serverShare holds the server's side of the exchange: the selected
	// curve, and its key pair (server) or received point (client).
	serverShare Slot

	retryRequired bool
}

func NewConn(config *Config) *Conn {
	if config == nil {
		config = &Config{}
	}
	prefs := config.Preferences()
	return &Conn{
		config:       config,
		prefs:        prefs,
		rand:         config.rand(),
		log:          config.logger(),
		version:      config.maxVersion(),
		clientShares: make([]Slot, len(prefs.Curves)),
	}
}

// Preferences returns the connection's active curve preference list.
func (c *Conn) Preferences() *Preferences {
	return c.prefs
}

// SetServerRandom records the random field from the server's hello.
func (c *Conn) SetServerRandom(random []byte) error {
	if len(random) != randomSize {
		return errors.Wrapf(ErrBadMessage, "server random is %d bytes", len(random))
	}
	copy(c.serverRandom[:], random)
	c.haveServerRandom = true
	return nil
}

// RetryRequired reports whether the last receive found no usable share, in
// which case the server must answer with a HelloRetryRequest.
func (c *Conn) RetryRequired() bool {
	return c.retryRequired
}

// MatchedCurves returns the curves for which a peer share was accepted, in
// preference order.
func (c *Conn) MatchedCurves() (curves []*NamedCurve) {
	for i := range c.clientShares {
		if c.clientShares[i].Remote != nil {
			curves = append(curves, c.clientShares[i].Curve)
		}
	}
	return curves
}

// SharedSecret derives the raw ECDH output once both sides of the exchange
// are in place. The two slots must reference the same curve; a mismatch
// fails before any cryptographic work. The caller owns the returned blob and
// should erase it after use.
func (c *Conn) SharedSecret() ([]byte, error) {
	curve := c.serverShare.Curve
	if curve == nil {
		return nil, errors.Wrap(ErrUnsupportedCurve, "no curve negotiated")
	}
	slot := c.clientSlotFor(curve.ID)
	if slot == nil || slot.Curve.ID != curve.ID {
		return nil, errors.Wrapf(ErrUnsupportedCurve, "no client share for %s", curve.Name)
	}
	switch {
	case c.serverShare.Local != nil && slot.Remote != nil:
		return curve.Scheme.ComputeShared(c.serverShare.Local, slot.Remote)
	case slot.Local != nil && c.serverShare.Remote != nil:
		return curve.Scheme.ComputeShared(slot.Local, c.serverShare.Remote)
	}
	return nil, errors.Wrapf(ecdhe.ErrSharedSecret, "missing key material for %s", curve.Name)
}

// Release frees every slot. Call when the connection is torn down.
func (c *Conn) Release() {
	for i := range c.clientShares {
		c.clientShares[i].Release()
	}
	c.serverShare.Release()
}

func (c *Conn) clientSlotFor(id uint16) *Slot {
	for i := range c.clientShares {
		if s := &c.clientShares[i]; s.Curve != nil && s.Curve.ID == id {
			return s
		}
	}
	return nil
}
