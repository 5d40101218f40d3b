package keyshare

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
)

// Wire layout, RFC 8446 §4.2.8:
//
//	extension type        (2 bytes)
//	extension data length (2 bytes)
//	client shares length  (2 bytes)
//	client shares:
//	    named group       (2 bytes)
//	    key share length  (2 bytes)
//	    key share         (variable)
//
// The receive side only fills the connection's slots; it never decides which
// share to use. Shares that violate the RFC are tolerated, not alerted on:
// duplicates for a group are ignored past the first, and shares for groups
// outside the preference list are skipped.

const shareEntryOverhead = 2 + 2

// KeyShare drives the key_share extension for a connection.
var KeyShare Extension = keyShareExtension{}

type keyShareExtension struct{}

func (keyShareExtension) Type() uint16 {
	return extensionTypeKeyShare
}

func (keyShareExtension) ShouldSend(conn *Conn) bool {
	return conn.version >= VersionTLS13
}

func (keyShareExtension) Send(conn *Conn, b *cryptobyte.Builder) error {
	// client shares length is back-patched after all entries are written.
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		if err := conn.appendKeyShares(b); err != nil {
			panic(cryptobyte.BuildError{Err: err})
		}
	})
	return nil
}

func (keyShareExtension) Receive(conn *Conn, data []byte) error {
	return conn.receiveKeyShares(data)
}

// wireSize returns the full encoded size of the extension, header included.
// After a HelloRetryRequest only the server's curve is counted.
func (keyShareExtension) wireSize(conn *Conn) int {
	const header = 2 + 2 + 2
	size := header
	if conn.isHelloRetry() {
		if curve := conn.serverShare.Curve; curve != nil && conn.prefs.Index(curve.ID) >= 0 {
			size += shareEntryOverhead + curve.ShareSize
		}
		return size
	}
	for _, curve := range conn.prefs.Curves {
		size += shareEntryOverhead + curve.ShareSize
	}
	return size
}

func (c *Conn) appendKeyShares(b *cryptobyte.Builder) error {
	// From RFC 8446 §4.1.2: if a key_share extension was supplied in the
	// HelloRetryRequest, replace the list of shares with a list containing a
	// single KeyShareEntry from the indicated group.
	if c.isHelloRetry() {
		return c.appendRetryShare(b)
	}
	if len(c.config.PreferredKeyShares) > 0 {
		return c.appendConfiguredShares(b)
	}
	if c.config.SendEmptyKeyShares {
		return c.appendEmptyShares(b)
	}
	for i, curve := range c.prefs.Curves {
		if err := c.appendFreshShare(b, &c.clientShares[i], curve); err != nil {
			return err
		}
	}
	return nil
}

// appendFreshShare generates an ephemeral key pair into slot and writes a
// real share entry for it. The slot is released on any failure.
func (c *Conn) appendFreshShare(b *cryptobyte.Builder, slot *Slot, curve *NamedCurve) error {
	slot.Curve = curve
	priv, err := curve.Scheme.Generate(c.rand)
	if err != nil {
		slot.Release()
		return errors.Wrapf(err, "generating %s share", curve.Name)
	}
	slot.Local = priv
	point := make([]byte, curve.ShareSize)
	if err := curve.Scheme.MarshalPoint(point, priv.Public()); err != nil {
		slot.Release()
		return errors.Wrapf(err, "encoding %s share", curve.Name)
	}
	b.AddUint16(curve.ID)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(point)
	})
	return nil
}

// appendReservedShare announces a curve without generating key material: the
// group id, the curve's share size, and a reserved span of that size.
func appendReservedShare(b *cryptobyte.Builder, curve *NamedCurve) {
	b.AddUint16(curve.ID)
	b.AddUint16(uint16(curve.ShareSize))
	b.AddBytes(make([]byte, curve.ShareSize))
}

// appendRetryShare handles the flight after a HelloRetryRequest: every
// earlier share is released and exactly one share is generated, for the
// curve the server indicated.
func (c *Conn) appendRetryShare(b *cryptobyte.Builder) error {
	for i := range c.clientShares {
		c.clientShares[i].Release()
	}
	curve := c.serverShare.Curve
	if curve == nil {
		return errors.Wrap(ErrBadMessage, "hello retry without a selected group")
	}
	c.log.Debugf("keyshare: hello retry, regenerating for %s", curve.Name)
	return c.appendFreshShare(b, &c.clientShares[0], curve)
}

// appendConfiguredShares generates real shares for the curves named by the
// configuration, in the configuration's order, then reserves entries for
// the remaining preference list curves. Reserved entries carry the curve's
// share size but no key material; a peer that picks one has to answer with a
// HelloRetryRequest.
func (c *Conn) appendConfiguredShares(b *cryptobyte.Builder) error {
	for _, id := range c.config.PreferredKeyShares {
		i := c.prefs.Index(id)
		if i < 0 {
			continue
		}
		if c.clientShares[i].Local != nil {
			continue
		}
		if err := c.appendFreshShare(b, &c.clientShares[i], c.prefs.Curves[i]); err != nil {
			return err
		}
	}
	for i, curve := range c.prefs.Curves {
		if c.clientShares[i].Local != nil {
			continue
		}
		c.clientShares[i].Curve = curve
		appendReservedShare(b, curve)
	}
	return nil
}

// appendEmptyShares announces every preference list curve without paying for
// generation, forcing the server to answer with a HelloRetryRequest.
func (c *Conn) appendEmptyShares(b *cryptobyte.Builder) error {
	for i, curve := range c.prefs.Curves {
		c.clientShares[i].Curve = curve
		appendReservedShare(b, curve)
	}
	return nil
}

// receiveKeyShares scans a peer's client shares list. Defective entries are
// skipped, never fatal: unsupported groups, duplicates (the first share for
// a group wins), sizes that do not match the curve, and points that fail
// validation. Only structural violations abort the parse. If nothing
// matched, the connection is flagged as requiring a HelloRetryRequest.
func (c *Conn) receiveKeyShares(data []byte) error {
	s := cryptobyte.String(data)
	var total uint16
	if !s.ReadUint16(&total) {
		return errors.Wrap(ErrBadMessage, "key_share: missing client shares length")
	}
	if len(s) < int(total) {
		return errors.Wrapf(ErrBadMessage, "key_share: announced %d bytes, have %d", total, len(s))
	}

	matched := false
	// processed is wider than the wire fields so the sum cannot overflow.
	var processed uint32
	for processed < uint32(total) {
		var group, shareSize uint16
		if !s.ReadUint16(&group) || !s.ReadUint16(&shareSize) {
			return errors.Wrap(ErrBadMessage, "key_share: truncated entry header")
		}
		if len(s) < int(shareSize) {
			return errors.Wrapf(ErrBadMessage, "key_share: entry announces %d bytes, have %d", shareSize, len(s))
		}
		processed += uint32(shareEntryOverhead) + uint32(shareSize)

		i := c.prefs.Index(group)
		if i < 0 {
			// unsupported group
			s.Skip(int(shareSize))
			continue
		}
		slot := &c.clientShares[i]
		curve := c.prefs.Curves[i]
		if slot.Curve != nil {
			// already have a share for this group
			s.Skip(int(shareSize))
			continue
		}
		if int(shareSize) != curve.ShareSize {
			c.log.Warnf("keyshare: %s share is %d bytes, want %d", curve.Name, shareSize, curve.ShareSize)
			s.Skip(int(shareSize))
			continue
		}

		var point []byte
		s.ReadBytes(&point, int(shareSize))
		slot.Curve = curve
		pub, err := curve.Scheme.ParsePoint(point)
		if err != nil {
			c.log.Warnf("keyshare: discarding %s share: %v", curve.Name, err)
			slot.Release()
			continue
		}
		slot.Remote = pub
		matched = true
	}

	if !matched {
		c.retryRequired = true
	}
	return nil
}

// ReceiveRetrySelection consumes the key_share extension of a
// HelloRetryRequest, which carries only the server's selected group. The
// group must be one the connection offered.
func (c *Conn) ReceiveRetrySelection(data []byte) error {
	s := cryptobyte.String(data)
	var group uint16
	if !s.ReadUint16(&group) || !s.Empty() {
		return errors.Wrap(ErrBadMessage, "key_share: malformed retry selection")
	}
	curve := c.prefs.Lookup(group)
	if curve == nil {
		return errors.Wrapf(ErrBadMessage, "key_share: server selected unsupported group %d", group)
	}
	c.serverShare.Release()
	c.serverShare.Curve = curve
	return nil
}

// ReceiveServerShare consumes the key_share extension of a ServerHello: a
// single entry for a group this connection sent a real share for. Unlike the
// client shares list, any defect here is fatal.
func (c *Conn) ReceiveServerShare(data []byte) error {
	s := cryptobyte.String(data)
	var group, shareSize uint16
	var point []byte
	if !s.ReadUint16(&group) || !s.ReadUint16(&shareSize) || !s.ReadBytes(&point, int(shareSize)) || !s.Empty() {
		return errors.Wrap(ErrBadMessage, "key_share: malformed server share")
	}
	curve := c.prefs.Lookup(group)
	if curve == nil {
		return errors.Wrapf(ErrBadMessage, "key_share: server selected unsupported group %d", group)
	}
	slot := c.clientSlotFor(group)
	if slot == nil || slot.Local == nil {
		return errors.Wrapf(ErrBadMessage, "key_share: server selected %s, but no share was sent for it", curve.Name)
	}
	if int(shareSize) != curve.ShareSize {
		return errors.Wrapf(ErrBadMessage, "key_share: %s share is %d bytes, want %d", curve.Name, shareSize, curve.ShareSize)
	}
	pub, err := curve.Scheme.ParsePoint(point)
	if err != nil {
		return errors.Wrapf(err, "key_share: server %s share", curve.Name)
	}
	c.serverShare.Release()
	c.serverShare.Curve = curve
	c.serverShare.Remote = pub
	return nil
}

// MarshalServerShare is the server's side of the exchange: it picks the
// first client share that parsed, generates the server's ephemeral key for
// that curve, and encodes the single entry a ServerHello carries.
func (c *Conn) MarshalServerShare() ([]byte, error) {
	var slot *Slot
	for i := range c.clientShares {
		if c.clientShares[i].Remote != nil {
			slot = &c.clientShares[i]
			break
		}
	}
	if slot == nil {
		return nil, errors.Wrap(ErrBadMessage, "key_share: no negotiable client share")
	}
	curve := slot.Curve

	c.serverShare.Release()
	c.serverShare.Curve = curve
	if err := c.serverShare.AdoptParams(slot); err != nil {
		return nil, err
	}
	priv, err := curve.Scheme.Generate(c.rand)
	if err != nil {
		c.serverShare.Release()
		return nil, errors.Wrapf(err, "generating %s share", curve.Name)
	}
	c.serverShare.Local = priv
	point := make([]byte, curve.ShareSize)
	if err := curve.Scheme.MarshalPoint(point, priv.Public()); err != nil {
		c.serverShare.Release()
		return nil, errors.Wrapf(err, "encoding %s share", curve.Name)
	}

	b := cryptobyte.NewBuilder(make([]byte, 0, shareEntryOverhead+curve.ShareSize))
	b.AddUint16(curve.ID)
	b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(point)
	})
	return b.Bytes()
}
