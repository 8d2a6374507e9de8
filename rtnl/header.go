package rtnl

import (
	"fmt"

	"github.com/josharian/native"
)

// The fixed headers preceding every rtnetlink attribute table. Netlink uses
// host byte ordering, hence the use of native.Endian throughout. Check
// rtnetlink(7) for the C definitions.

// ifInfoMsg mirrors struct ifinfomsg.
type ifInfoMsg struct {
	Family uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

func (m ifInfoMsg) MarshalBinary() ([]byte, error) {
	b := make([]byte, SizeofIfInfomsg)
	b[0] = m.Family
	native.Endian.PutUint16(b[2:4], m.Type)
	native.Endian.PutUint32(b[4:8], uint32(m.Index))
	native.Endian.PutUint32(b[8:12], m.Flags)
	native.Endian.PutUint32(b[12:16], m.Change)
	return b, nil
}

func (m *ifInfoMsg) UnmarshalBinary(b []byte) error {
	if len(b) < SizeofIfInfomsg {
		return fmt.Errorf("%w: ifinfomsg short read (%d); want %d", ErrMalformedMessage, len(b), SizeofIfInfomsg)
	}
	m.Family = b[0]
	m.Type = native.Endian.Uint16(b[2:4])
	m.Index = int32(native.Endian.Uint32(b[4:8]))
	m.Flags = native.Endian.Uint32(b[8:12])
	m.Change = native.Endian.Uint32(b[12:16])
	return nil
}

// ifAddrMsg mirrors struct ifaddrmsg.
type ifAddrMsg struct {
	Family    uint8
	PrefixLen uint8
	Flags     uint8
	Scope     uint8
	Index     uint32
}

func (m ifAddrMsg) MarshalBinary() ([]byte, error) {
	b := make([]byte, SizeofIfAddrmsg)
	b[0] = m.Family
	b[1] = m.PrefixLen
	b[2] = m.Flags
	b[3] = m.Scope
	native.Endian.PutUint32(b[4:8], m.Index)
	return b, nil
}

func (m *ifAddrMsg) UnmarshalBinary(b []byte) error {
	if len(b) < SizeofIfAddrmsg {
		return fmt.Errorf("%w: ifaddrmsg short read (%d); want %d", ErrMalformedMessage, len(b), SizeofIfAddrmsg)
	}
	m.Family = b[0]
	m.PrefixLen = b[1]
	m.Flags = b[2]
	m.Scope = b[3]
	m.Index = native.Endian.Uint32(b[4:8])
	return nil
}

// rtMsg mirrors struct rtmsg.
type rtMsg struct {
	Family   uint8
	DstLen   uint8
	SrcLen   uint8
	Tos      uint8
	Table    uint8
	Protocol uint8
	Scope    uint8
	Type     uint8
	Flags    uint32
}

func (m rtMsg) MarshalBinary() ([]byte, error) {
	b := make([]byte, SizeofRtMsg)
	b[0] = m.Family
	b[1] = m.DstLen
	b[2] = m.SrcLen
	b[3] = m.Tos
	b[4] = m.Table
	b[5] = m.Protocol
	b[6] = m.Scope
	b[7] = m.Type
	native.Endian.PutUint32(b[8:12], m.Flags)
	return b, nil
}

func (m *rtMsg) UnmarshalBinary(b []byte) error {
	if len(b) < SizeofRtMsg {
		return fmt.Errorf("%w: rtmsg short read (%d); want %d", ErrMalformedMessage, len(b), SizeofRtMsg)
	}
	m.Family = b[0]
	m.DstLen = b[1]
	m.SrcLen = b[2]
	m.Tos = b[3]
	m.Table = b[4]
	m.Protocol = b[5]
	m.Scope = b[6]
	m.Type = b[7]
	m.Flags = native.Endian.Uint32(b[8:12])
	return nil
}

// dumpRequest returns the body of a dump request for kind. Links are dumped
// for every family while addresses and routes carry the requested one.
func dumpRequest(kind ObjectKind, family uint8) ([]byte, error) {
	switch kind {
	case Interfaces:
		return ifInfoMsg{}.MarshalBinary()
	case Addresses:
		return ifAddrMsg{Family: family}.MarshalBinary()
	case Routes:
		return rtMsg{Family: family}.MarshalBinary()
	}
	return nil, fmt.Errorf("no dump request for object kind %d", kind)
}
