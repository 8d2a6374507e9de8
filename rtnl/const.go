package rtnl

// All of these constants' names make the linter complain, but they mirror the
// kernel's uapi headers (include/uapi/linux/{netlink,rtnetlink,if_link,
// if_addr}.h) so we will keep them. They are spelled out here instead of
// being pulled from golang.org/x/sys/unix so that decoding stays portable.
const (
	NETLINK_ROUTE = 0

	RTM_NEWLINK  uint16 = 16
	RTM_GETLINK  uint16 = 18
	RTM_NEWADDR  uint16 = 20
	RTM_GETADDR  uint16 = 22
	RTM_NEWROUTE uint16 = 24
	RTM_GETROUTE uint16 = 26

	IFLA_ADDRESS   uint16 = 1
	IFLA_BROADCAST uint16 = 2
	IFLA_IFNAME    uint16 = 3

	IFA_ADDRESS   uint16 = 1
	IFA_LOCAL     uint16 = 2
	IFA_LABEL     uint16 = 3
	IFA_BROADCAST uint16 = 4
	IFA_ANYCAST   uint16 = 5

	RTA_DST      uint16 = 1
	RTA_SRC      uint16 = 2
	RTA_IIF      uint16 = 3
	RTA_OIF      uint16 = 4
	RTA_GATEWAY  uint16 = 5
	RTA_PRIORITY uint16 = 6
	RTA_TABLE    uint16 = 15

	// Fixed header sizes; all of them are already NLMSG_ALIGNTO aligned.
	SizeofIfInfomsg = 16
	SizeofIfAddrmsg = 8
	SizeofRtMsg     = 12
)

var (
	iflaName = map[uint16]string{
		IFLA_ADDRESS:   "IFLA_ADDRESS",
		IFLA_BROADCAST: "IFLA_BROADCAST",
		IFLA_IFNAME:    "IFLA_IFNAME",
	}

	ifaName = map[uint16]string{
		IFA_ADDRESS:   "IFA_ADDRESS",
		IFA_LOCAL:     "IFA_LOCAL",
		IFA_LABEL:     "IFA_LABEL",
		IFA_BROADCAST: "IFA_BROADCAST",
		IFA_ANYCAST:   "IFA_ANYCAST",
	}

	rtaName = map[uint16]string{
		RTA_DST:      "RTA_DST",
		RTA_SRC:      "RTA_SRC",
		RTA_IIF:      "RTA_IIF",
		RTA_OIF:      "RTA_OIF",
		RTA_GATEWAY:  "RTA_GATEWAY",
		RTA_PRIORITY: "RTA_PRIORITY",
		RTA_TABLE:    "RTA_TABLE",
	}
)

// ObjectKind selects what a dump request enumerates.
type ObjectKind int

const (
	Interfaces ObjectKind = iota
	Addresses
	Routes
)

var (
	kindName = map[ObjectKind]string{
		Interfaces: "interfaces",
		Addresses:  "addresses",
		Routes:     "routes",
	}

	kindRequest = map[ObjectKind]uint16{
		Interfaces: RTM_GETLINK,
		Addresses:  RTM_GETADDR,
		Routes:     RTM_GETROUTE,
	}

	kindReply = map[ObjectKind]uint16{
		Interfaces: RTM_NEWLINK,
		Addresses:  RTM_NEWADDR,
		Routes:     RTM_NEWROUTE,
	}

	kindAttrNames = map[ObjectKind]map[uint16]string{
		Interfaces: iflaName,
		Addresses:  ifaName,
		Routes:     rtaName,
	}
)

func (k ObjectKind) String() string {
	repr, ok := kindName[k]
	if !ok {
		return "unknown"
	}
	return repr
}

// attrName returns the symbolic name of an attribute in k's namespace.
func (k ObjectKind) attrName(t uint16) string {
	if n, ok := kindAttrNames[k][t]; ok {
		return n
	}
	return "UNKNOWN"
}
