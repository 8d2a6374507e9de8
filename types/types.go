package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Family is the address family of an address or route record. Its numeric
// value is the external encoding: 4 for IPv4 and 6 for IPv6.
type Family uint8

const (
	V4 Family = 4
	V6 Family = 6

	// Kernel address families as defined in include/linux/socket.h. They are
	// spelled out so that decoding does not depend on the host's values.
	afUnspec uint8 = 0
	afInet   uint8 = 2
	afInet6  uint8 = 10
)

// ErrUnknownFamily signals a family tag outside {V4, V6}.
var ErrUnknownFamily = errors.New("unknown address family")

var (
	familyMap = map[string]Family{
		"4":    V4,
		"V4":   V4,
		"IPV4": V4,
		"6":    V6,
		"V6":   V6,
		"IPV6": V6,
	}

	ylimafMap = map[Family]string{
		0:  "unspec",
		V4: "v4",
		V6: "v6",
	}
)

func (f Family) String() string {
	repr, ok := ylimafMap[f]
	if !ok {
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
	return repr
}

// Valid reports whether f is one of V4 or V6.
func (f Family) Valid() bool {
	return f == V4 || f == V6
}

// AF returns the kernel address family (AF_INET or AF_INET6) for f. The
// zero value maps to AF_UNSPEC.
func (f Family) AF() uint8 {
	switch f {
	case V4:
		return afInet
	case V6:
		return afInet6
	}
	return afUnspec
}

// FamilyFromTag decodes the external numeric encoding of a family.
func FamilyFromTag(tag uint8) (Family, error) {
	switch Family(tag) {
	case V4, V6:
		return Family(tag), nil
	}
	return 0, fmt.Errorf("%w: tag %d", ErrUnknownFamily, tag)
}

// FamilyFromAF maps a kernel address family onto a Family. Only AF_INET and
// AF_INET6 are accepted.
func FamilyFromAF(af uint8) (Family, error) {
	switch af {
	case afInet:
		return V4, nil
	case afInet6:
		return V6, nil
	}
	return 0, fmt.Errorf("%w: kernel family %d", ErrUnknownFamily, af)
}

// ParseFamily accepts "4", "6", "v4", "v6", "ipv4" and "ipv6" in any case.
func ParseFamily(s string) (Family, bool) {
	f, ok := familyMap[strings.ToUpper(s)]
	return f, ok
}

func (f Family) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownFamily, uint8(f))
	}
	return []byte(strconv.Itoa(int(f))), nil
}

func (f *Family) UnmarshalJSON(b []byte) error {
	n, err := strconv.ParseUint(string(b), 10, 8)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, b)
	}

	fam, err := FamilyFromTag(uint8(n))
	if err != nil {
		return err
	}
	*f = fam

	return nil
}

func (f Family) MarshalYAML() (interface{}, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownFamily, uint8(f))
	}
	return uint8(f), nil
}

func (f *Family) UnmarshalYAML(b []byte) error {
	return f.UnmarshalJSON([]byte(strings.TrimSpace(string(b))))
}
