//go:build !linux

package rtnl

import "fmt"

func newResolver(kind string, nsFd int) (Resolver, error) {
	switch kind {
	case ResolverNet:
		return netResolver{}, nil
	case ResolverRtnl, ResolverHandle, "":
		return nil, fmt.Errorf("resolver %q is only available on linux", kind)
	}
	return nil, fmt.Errorf("unknown resolver %q", kind)
}

func openNamespace(name string) (int, func() error, error) {
	if name == "" {
		return 0, func() error { return nil }, nil
	}
	return 0, nil, fmt.Errorf("network namespaces are only available on linux")
}
