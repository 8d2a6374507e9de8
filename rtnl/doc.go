// Package rtnl implements read-only queries against the kernel's rtnetlink
// subsystem: dumps of the network interfaces, their addresses and the routing
// tables. Check rtnetlink(7) and netlink(7) for the wire format.
//
// Every query is a single dump conversation: an RTM_GET* request flagged with
// NLM_F_REQUEST | NLM_F_DUMP followed by a multi-part reply terminated by
// NLMSG_DONE. The socket handling is left to github.com/mdlayher/netlink,
// this package decodes the RTM_NEW* messages in the reply into the records
// defined in package types.
//
// Replies are decoded with the structures in include/uapi/linux/rtnetlink.h,
// include/uapi/linux/if_link.h and include/uapi/linux/if_addr.h in mind. Route
// dumps span every table: the RTM_GETROUTE dump handler [0] walks all of them
// unless strict checking is enabled and a table is asked for explicitly.
//
// Interface names are not taken from IFLA_IFNAME but resolved on the fly from
// the index, so they reflect the state of the system at decoding time.
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv4/fib_frontend.c#L1007
package rtnl
