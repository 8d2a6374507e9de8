package rtnl

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/josharian/native"
	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

// attributeTable indexes the attributes trailing a fixed header by type.
// Like the kernel's own parse_rtattr, a repeated type keeps its last value.
type attributeTable struct {
	kind  ObjectKind
	attrs map[uint16][]byte
}

func parseAttributes(kind ObjectKind, b []byte) (attributeTable, error) {
	t := attributeTable{kind: kind, attrs: map[uint16][]byte{}}

	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return t, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	ad.ByteOrder = native.Endian

	for ad.Next() {
		t.attrs[ad.Type()] = ad.Bytes()
	}
	if err := ad.Err(); err != nil {
		return t, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	return t, nil
}

// ip reads key as an address of the given family rendered in its canonical
// text form.
func (t attributeTable) ip(family types.Family, key uint16) (types.Option[string], error) {
	b, ok := t.attrs[key]
	if !ok {
		return types.None[string](), nil
	}

	switch {
	case family == types.V4 && len(b) == net.IPv4len:
		return types.Some(netip.AddrFrom4([4]byte(b)).String()), nil
	case family == types.V6 && len(b) == net.IPv6len:
		return types.Some(netip.AddrFrom16([16]byte(b)).String()), nil
	}

	return types.None[string](), fmt.Errorf("%w: %s carries %d bytes for family %s",
		ErrMalformedMessage, t.kind.attrName(key), len(b), family)
}

// hardwareAddr reads key as a link-layer address (aa:bb:cc:dd:ee:ff).
func (t attributeTable) hardwareAddr(key uint16) types.Option[string] {
	b, ok := t.attrs[key]
	if !ok {
		return types.None[string]()
	}
	return types.Some(net.HardwareAddr(b).String())
}

func (t attributeTable) uint32(key uint16) (types.Option[uint32], error) {
	b, ok := t.attrs[key]
	if !ok {
		return types.None[uint32](), nil
	}

	if len(b) != 4 {
		return types.None[uint32](), fmt.Errorf("%w: %s carries %d bytes; want 4",
			ErrMalformedMessage, t.kind.attrName(key), len(b))
	}

	return types.Some(native.Endian.Uint32(b)), nil
}
