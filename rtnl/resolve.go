package rtnl

import (
	"errors"
	"fmt"
	"net"
)

// ErrInterfaceNotFound is returned by resolvers when no interface carries the
// requested index anymore.
var ErrInterfaceNotFound = errors.New("interface not found")

// Resolver maps an interface index onto its current name. Lookups hit live
// kernel state: nothing is cached.
type Resolver interface {
	InterfaceName(index uint32) (string, error)
	Close() error
}

const (
	ResolverRtnl   = "rtnl"
	ResolverHandle = "handle"
	ResolverNet    = "net"
)

// netResolver relies on the standard library's if_indextoname counterpart.
// It is always available but cannot look into other network namespaces.
type netResolver struct{}

func (netResolver) InterfaceName(index uint32) (string, error) {
	iface, err := net.InterfaceByIndex(int(index))
	if err != nil {
		return "", fmt.Errorf("%w: index %d: %v", ErrInterfaceNotFound, index, err)
	}
	return iface.Name, nil
}

func (netResolver) Close() error {
	return nil
}
