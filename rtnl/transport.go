package rtnl

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

// Transport is the narrow contract a dump session needs from the netlink
// layer. Framing, alignment, sequence numbers and multi-part continuation
// are its business.
type Transport interface {
	// SubmitDump sends a dump request for kind restricted to family. The
	// zero family requests every family.
	SubmitDump(kind ObjectKind, family types.Family) error

	// ReceiveDump invokes onMessage once per object message in the reply
	// and blocks until the stream is complete. If onMessage returns an error
	// draining stops and that very error is returned.
	ReceiveDump(onMessage func(netlink.Message) error) error

	Close() error
}

// netlinkTransport implements Transport on top of a github.com/mdlayher/netlink
// connection to the NETLINK_ROUTE family.
type netlinkTransport struct {
	conn *netlink.Conn
}

// DialTransport opens a NETLINK_ROUTE socket. Beware that the returned
// transport must be closed to avoid leaking fds.
func DialTransport(config *netlink.Config) (Transport, error) {
	conn, err := netlink.Dial(NETLINK_ROUTE, config)
	if err != nil {
		return nil, fmt.Errorf("could not open rtnetlink socket: %w", err)
	}
	return NewTransport(conn), nil
}

// NewTransport wraps an already established connection. It comes in handy
// when paired with github.com/mdlayher/netlink/nltest.
func NewTransport(conn *netlink.Conn) Transport {
	return &netlinkTransport{conn: conn}
}

// SubmitDump crafts the request as
//
//	 Type: RTM_GETLINK, RTM_GETADDR or RTM_GETROUTE; rtnetlink(7)
//	Flags: NLM_F_REQUEST | NLM_F_DUMP; netlink(7)
//
// followed by the kind's fixed header with only the family populated. The
// sequence number and port ID are filled in by the connection.
func (t *netlinkTransport) SubmitDump(kind ObjectKind, family types.Family) error {
	req, ok := kindRequest[kind]
	if !ok {
		return fmt.Errorf("unknown object kind %d", kind)
	}

	body, err := dumpRequest(kind, family.AF())
	if err != nil {
		return err
	}

	if _, err := t.conn.Send(netlink.Message{
		Header: netlink.Header{
			Type:  netlink.HeaderType(req),
			Flags: netlink.Request | netlink.Dump,
		},
		Data: body,
	}); err != nil {
		return fmt.Errorf("error sending the dump request: %w", err)
	}

	return nil
}

// ReceiveDump leverages the fact that (*netlink.Conn).Receive keeps on
// reading until it sees NLMSG_DONE on multi-part replies, turns NLMSG_ERROR
// into an error and strips the trailing NLMSG_DONE.
func (t *netlinkTransport) ReceiveDump(onMessage func(netlink.Message) error) error {
	msgs, err := t.conn.Receive()
	if err != nil {
		return fmt.Errorf("error receiving the dump reply: %w", err)
	}

	for _, m := range msgs {
		if m.Header.Flags&netlink.DumpInterrupted != 0 {
			return ErrDumpInterrupted
		}

		switch m.Header.Type {
		case netlink.Done, netlink.Noop:
			continue
		}

		if err := onMessage(m); err != nil {
			return err
		}
	}

	return nil
}

func (t *netlinkTransport) Close() error {
	return t.conn.Close()
}
