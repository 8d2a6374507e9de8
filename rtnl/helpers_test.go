package rtnl

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/josharian/native"
	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelError,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Remove the directory from the source's filename.
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}

const (
	afInet  = 2
	afInet6 = 10
	afBogus = 7
)

type attr struct {
	typ  uint16
	data []byte
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	native.Endian.PutUint32(b, v)
	return b
}

func ip4(a, b, c, d byte) []byte {
	return []byte{a, b, c, d}
}

func encodeAttrs(t *testing.T, attrs []attr) []byte {
	t.Helper()

	ae := netlink.NewAttributeEncoder()
	for _, a := range attrs {
		ae.Bytes(a.typ, a.data)
	}

	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("error encoding attributes: %v", err)
	}
	return b
}

func mustMarshal(t *testing.T, m interface{ MarshalBinary() ([]byte, error) }) []byte {
	t.Helper()

	b, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("error marshalling header: %v", err)
	}
	return b
}

func linkMsg(t *testing.T, index int32, attrs ...attr) netlink.Message {
	t.Helper()
	return netlink.Message{
		Header: netlink.Header{Type: netlink.HeaderType(RTM_NEWLINK)},
		Data:   append(mustMarshal(t, ifInfoMsg{Index: index}), encodeAttrs(t, attrs)...),
	}
}

func addrMsg(t *testing.T, hdr ifAddrMsg, attrs ...attr) netlink.Message {
	t.Helper()
	return netlink.Message{
		Header: netlink.Header{Type: netlink.HeaderType(RTM_NEWADDR)},
		Data:   append(mustMarshal(t, hdr), encodeAttrs(t, attrs)...),
	}
}

func routeMsg(t *testing.T, hdr rtMsg, attrs ...attr) netlink.Message {
	t.Helper()
	return netlink.Message{
		Header: netlink.Header{Type: netlink.HeaderType(RTM_NEWROUTE)},
		Data:   append(mustMarshal(t, hdr), encodeAttrs(t, attrs)...),
	}
}

// mapResolver resolves names from a fixed table.
type mapResolver map[uint32]string

func (r mapResolver) InterfaceName(index uint32) (string, error) {
	name, ok := r[index]
	if !ok {
		return "", fmt.Errorf("%w: index %d", ErrInterfaceNotFound, index)
	}
	return name, nil
}

func (r mapResolver) Close() error {
	return nil
}

var testResolver = mapResolver{1: "lo", 2: "eth0", 3: "wlan0"}

func testDecoder() decoder {
	return decoder{resolver: testResolver, logger: slog.Default()}
}

// transportStats counts the transports handed out by fakeClient.
type transportStats struct {
	opened int
	closed int
	kinds  []ObjectKind
	fams   []types.Family
}

// fakeTransport replays a canned reply.
type fakeTransport struct {
	stats      *transportStats
	reply      []netlink.Message
	submitErr  error
	receiveErr error
	received   bool
}

func (f *fakeTransport) SubmitDump(kind ObjectKind, family types.Family) error {
	f.stats.kinds = append(f.stats.kinds, kind)
	f.stats.fams = append(f.stats.fams, family)
	return f.submitErr
}

func (f *fakeTransport) ReceiveDump(onMessage func(netlink.Message) error) error {
	f.received = true
	for _, m := range f.reply {
		if err := onMessage(m); err != nil {
			return err
		}
	}
	return f.receiveErr
}

func (f *fakeTransport) Close() error {
	f.stats.closed++
	return nil
}

var errSubmit = errors.New("sendmsg: no buffer space available")

func fakeClient(stats *transportStats, mk func() *fakeTransport) *Client {
	conf := DefaultConfig
	conf.Log = false
	return newClient(conf, func() (Transport, error) {
		t := mk()
		t.stats = stats
		stats.opened++
		return t, nil
	}, testResolver)
}
