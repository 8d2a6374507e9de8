package rtnl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

// decoder turns one reply message into one record. Apart from interface name
// resolution it is a pure function of the message.
type decoder struct {
	resolver Resolver
	logger   *slog.Logger
}

// interfaceName resolves index as of now. A failed lookup (e.g. the interface
// vanished between the dump and the decode) yields an empty name rather than
// failing the whole query.
func (d decoder) interfaceName(index uint32) string {
	name, err := d.resolver.InterfaceName(index)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrInterfaceNotFound) {
			level = slog.LevelInfo
		}
		d.logger.Log(context.Background(), level, "couldn't resolve interface name", "index", index, "err", err)
		return ""
	}
	return name
}

func (d decoder) decodeInterface(m netlink.Message) (types.InterfaceRecord, error) {
	var hdr ifInfoMsg
	if err := hdr.UnmarshalBinary(m.Data); err != nil {
		return types.InterfaceRecord{}, contractError(Interfaces, err)
	}

	attrs, err := parseAttributes(Interfaces, m.Data[SizeofIfInfomsg:])
	if err != nil {
		return types.InterfaceRecord{}, contractError(Interfaces, err)
	}

	r := types.InterfaceRecord{
		Index:     hdr.Index,
		Name:      d.interfaceName(uint32(hdr.Index)),
		Address:   attrs.hardwareAddr(IFLA_ADDRESS),
		Broadcast: attrs.hardwareAddr(IFLA_BROADCAST),
	}

	d.logger.Log(context.Background(), types.LevelTrace, "InterfaceRecord instance created", "record", r)

	return r, nil
}

func (d decoder) decodeAddress(m netlink.Message) (types.AddressRecord, error) {
	var hdr ifAddrMsg
	if err := hdr.UnmarshalBinary(m.Data); err != nil {
		return types.AddressRecord{}, contractError(Addresses, err)
	}

	family, err := types.FamilyFromAF(hdr.Family)
	if err != nil {
		return types.AddressRecord{}, contractError(Addresses, err)
	}

	attrs, err := parseAttributes(Addresses, m.Data[SizeofIfAddrmsg:])
	if err != nil {
		return types.AddressRecord{}, contractError(Addresses, err)
	}

	r := types.AddressRecord{
		Family:       family,
		Index:        int32(hdr.Index),
		Name:         d.interfaceName(hdr.Index),
		PrefixLength: hdr.PrefixLen,
		Scope:        hdr.Scope,
	}

	for _, f := range []struct {
		key uint16
		dst *types.Option[string]
	}{
		{IFA_ADDRESS, &r.Address},
		{IFA_LOCAL, &r.Local},
		{IFA_BROADCAST, &r.Broadcast},
		{IFA_ANYCAST, &r.Anycast},
	} {
		if *f.dst, err = attrs.ip(family, f.key); err != nil {
			return types.AddressRecord{}, contractError(Addresses, err)
		}
	}

	d.logger.Log(context.Background(), types.LevelTrace, "AddressRecord instance created", "record", r)

	return r, nil
}

func (d decoder) decodeRoute(m netlink.Message) (types.RouteRecord, error) {
	var hdr rtMsg
	if err := hdr.UnmarshalBinary(m.Data); err != nil {
		return types.RouteRecord{}, contractError(Routes, err)
	}

	family, err := types.FamilyFromAF(hdr.Family)
	if err != nil {
		return types.RouteRecord{}, contractError(Routes, err)
	}

	attrs, err := parseAttributes(Routes, m.Data[SizeofRtMsg:])
	if err != nil {
		return types.RouteRecord{}, contractError(Routes, err)
	}

	// The table goes first: without it there is no record to build.
	table, err := attrs.uint32(RTA_TABLE)
	if err != nil {
		return types.RouteRecord{}, contractError(Routes, err)
	}
	tableNum, ok := table.Get()
	if !ok {
		d.logger.Error("no table number provided for routing record", "family", family,
			"dst_len", hdr.DstLen, "header_table", hdr.Table)
		return types.RouteRecord{}, contractError(Routes, ErrMissingTable)
	}

	r := types.RouteRecord{
		Family:            family,
		DestinationLength: hdr.DstLen,
		SourceLength:      hdr.SrcLen,
		Table:             tableNum,
	}

	for _, f := range []struct {
		key uint16
		dst *types.Option[string]
	}{
		{RTA_DST, &r.Destination},
		{RTA_SRC, &r.Source},
		{RTA_GATEWAY, &r.Gateway},
	} {
		if *f.dst, err = attrs.ip(family, f.key); err != nil {
			return types.RouteRecord{}, contractError(Routes, err)
		}
	}

	for _, f := range []struct {
		key uint16
		dst *types.Option[types.Link]
	}{
		{RTA_IIF, &r.InputInterface},
		{RTA_OIF, &r.OutputInterface},
	} {
		index, err := attrs.uint32(f.key)
		if err != nil {
			return types.RouteRecord{}, contractError(Routes, err)
		}
		if i, ok := index.Get(); ok {
			*f.dst = types.Some(types.Link{Index: i, Name: d.interfaceName(i)})
		}
	}

	if r.Priority, err = attrs.uint32(RTA_PRIORITY); err != nil {
		return types.RouteRecord{}, contractError(Routes, err)
	}

	d.logger.Log(context.Background(), types.LevelTrace, "RouteRecord instance created", "record", r)

	return r, nil
}
