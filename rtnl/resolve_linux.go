//go:build linux

package rtnl

import (
	"errors"
	"fmt"
	"path/filepath"

	jrtnl "github.com/jsimonetti/rtnetlink/v2/rtnl"
	"github.com/mdlayher/netlink"
	vnl "github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"
)

// rtnlResolver issues an RTM_GETLINK request per lookup through
// github.com/jsimonetti/rtnetlink. It honours the configured namespace.
type rtnlResolver struct {
	conn *jrtnl.Conn
}

func (r *rtnlResolver) InterfaceName(index uint32) (string, error) {
	iface, err := r.conn.LinkByIndex(int(index))
	if err != nil {
		if errors.Is(err, unix.ENODEV) {
			return "", fmt.Errorf("%w: index %d", ErrInterfaceNotFound, index)
		}
		return "", fmt.Errorf("error getting link %d: %w", index, err)
	}
	return iface.Name, nil
}

func (r *rtnlResolver) Close() error {
	return r.conn.Close()
}

// handleResolver goes through github.com/vishvananda/netlink. Handles can be
// bound to a network namespace other than ours.
type handleResolver struct {
	handle *vnl.Handle
}

func (r *handleResolver) InterfaceName(index uint32) (string, error) {
	link, err := r.handle.LinkByIndex(int(index))
	if err != nil {
		var notFound vnl.LinkNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, unix.ENODEV) {
			return "", fmt.Errorf("%w: index %d", ErrInterfaceNotFound, index)
		}
		return "", fmt.Errorf("error getting link %d: %w", index, err)
	}
	return link.Attrs().Name, nil
}

func (r *handleResolver) Close() error {
	r.handle.Close()
	return nil
}

// newResolver builds the resolver named kind. A non-zero nsFd points every
// lookup at that network namespace.
func newResolver(kind string, nsFd int) (Resolver, error) {
	switch kind {
	case ResolverRtnl, "":
		conn, err := jrtnl.Dial(&netlink.Config{NetNS: nsFd})
		if err != nil {
			return nil, fmt.Errorf("couldn't open a rtnl connection: %w", err)
		}
		return &rtnlResolver{conn: conn}, nil
	case ResolverHandle:
		var (
			h   *vnl.Handle
			err error
		)
		if nsFd != 0 {
			h, err = vnl.NewHandleAt(netns.NsHandle(nsFd), unix.NETLINK_ROUTE)
		} else {
			h, err = vnl.NewHandle(unix.NETLINK_ROUTE)
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't get a netlink handle: %w", err)
		}
		return &handleResolver{handle: h}, nil
	case ResolverNet:
		if nsFd != 0 {
			return nil, fmt.Errorf("resolver %q cannot look into other network namespaces", kind)
		}
		return netResolver{}, nil
	}
	return nil, fmt.Errorf("unknown resolver %q", kind)
}

// openNamespace returns a file descriptor for the named network namespace.
// Names are looked up under /var/run/netns like ip-netns(8) does; absolute
// paths (e.g. /proc/<pid>/ns/net) are opened as is. An empty name means our
// own namespace and yields a zero descriptor.
func openNamespace(name string) (int, func() error, error) {
	if name == "" {
		return 0, func() error { return nil }, nil
	}

	var (
		h   netns.NsHandle
		err error
	)
	if filepath.IsAbs(name) {
		h, err = netns.GetFromPath(name)
	} else {
		h, err = netns.GetFromName(name)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("couldn't open network namespace %q: %w", name, err)
	}

	return int(h), h.Close, nil
}
