package rtnl

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

// Interfaces dumps every network interface.
func (c *Client) Interfaces() (*types.Set[types.InterfaceRecord], error) {
	d := c.decoder()
	return collect(c, Interfaces, 0, func(m netlink.Message) (types.InterfaceRecord, bool, error) {
		r, err := d.decodeInterface(m)
		return r, err == nil, err
	})
}

// Addresses dumps the interface addresses of the given family. Addresses
// of any other family showing up in the reply are dropped.
func (c *Client) Addresses(family types.Family) (*types.Set[types.AddressRecord], error) {
	if !family.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(family))
	}

	d := c.decoder()
	return collect(c, Addresses, family, func(m netlink.Message) (types.AddressRecord, bool, error) {
		if !sameFamily(m, family) {
			return types.AddressRecord{}, false, nil
		}
		r, err := d.decodeAddress(m)
		return r, err == nil, err
	})
}

func (c *Client) AddressesV4() (*types.Set[types.AddressRecord], error) {
	return c.Addresses(types.V4)
}

func (c *Client) AddressesV6() (*types.Set[types.AddressRecord], error) {
	return c.Addresses(types.V6)
}

// Routes dumps the routes of the given family across every routing table.
// Routes of any other family showing up in the reply are dropped.
func (c *Client) Routes(family types.Family) (*types.Set[types.RouteRecord], error) {
	if !family.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(family))
	}

	d := c.decoder()
	return collect(c, Routes, family, func(m netlink.Message) (types.RouteRecord, bool, error) {
		if !sameFamily(m, family) {
			return types.RouteRecord{}, false, nil
		}
		r, err := d.decodeRoute(m)
		return r, err == nil, err
	})
}

func (c *Client) RoutesV4() (*types.Set[types.RouteRecord], error) {
	return c.Routes(types.V4)
}

func (c *Client) RoutesV6() (*types.Set[types.RouteRecord], error) {
	return c.Routes(types.V6)
}

// sameFamily peeks at the family byte leading ifaddrmsg and rtmsg alike.
// Empty bodies are let through so that the decoder flags them.
func sameFamily(m netlink.Message, family types.Family) bool {
	return len(m.Data) == 0 || m.Data[0] == family.AF()
}
