package rtnl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mdlayher/netlink"
	"github.com/scitags/rtquery/types"
)

// Client runs read-only dump queries against the kernel's rtnetlink
// subsystem. Every query opens its own transport, drains a single dump
// conversation and releases the transport before returning, so a Client can
// be shared across goroutines.
type Client struct {
	Config

	dial     func() (Transport, error)
	resolver Resolver
	logger   *slog.Logger
	observer Observer

	closeNamespace func() error
}

func (c *Client) String() string {
	return "rtnetlink client"
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = &DefaultConfig
	}

	nsFd, closeNamespace, err := openNamespace(config.Namespace)
	if err != nil {
		return nil, err
	}

	resolver, err := newResolver(config.Resolver, nsFd)
	if err != nil {
		closeNamespace()
		return nil, err
	}

	nlConfig := &netlink.Config{NetNS: nsFd, Strict: config.Strict}

	c := newClient(*config, func() (Transport, error) {
		return DialTransport(nlConfig)
	}, resolver)
	c.closeNamespace = closeNamespace

	c.logger.Debug("initialised the rtnetlink client", "namespace", config.Namespace,
		"resolver", config.Resolver, "strict", config.Strict)

	return c, nil
}

func newClient(config Config, dial func() (Transport, error), resolver Resolver) *Client {
	c := &Client{
		Config:   config,
		dial:     dial,
		resolver: resolver,
		observer: config.Observer,
	}

	switch {
	case !config.Log:
		c.logger = slog.New(slog.DiscardHandler)
	case config.Logger != nil:
		c.logger = config.Logger
	default:
		c.logger = slog.Default().With("t", "rtnl")
	}

	if c.observer == nil {
		c.observer = nopObserver{}
	}

	return c
}

func (c *Client) Close() error {
	var errs error
	if err := c.resolver.Close(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("error closing the resolver: %w", err))
	}
	if c.closeNamespace != nil {
		if err := c.closeNamespace(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("error closing the namespace handle: %w", err))
		}
	}
	return errs
}

func (c *Client) decoder() decoder {
	return decoder{resolver: c.resolver, logger: c.logger}
}

// dump runs one dump session: open, submit, drain, release. The transport is
// closed on every path out of here. Errors returned by onMessage stop the
// drain and are handed back untouched.
func (c *Client) dump(kind ObjectKind, family types.Family, onMessage func(netlink.Message) error) error {
	t, err := c.dial()
	if err != nil {
		c.logger.Error("error opening the rtnetlink transport", "kind", kind, "family", family, "err", err)
		return &DumpError{Kind: kind, Family: family, Op: OpOpen, Err: err}
	}
	defer func() {
		if err := t.Close(); err != nil {
			c.logger.Warn("error closing the rtnetlink transport", "kind", kind, "err", err)
		}
	}()

	if err := t.SubmitDump(kind, family); err != nil {
		c.logger.Error("error performing dump request", "kind", kind, "family", family, "err", err)
		return &DumpError{Kind: kind, Family: family, Op: OpSubmit, Err: err}
	}

	var (
		cbErr   error
		nParsed int
	)
	err = t.ReceiveDump(func(m netlink.Message) error {
		nParsed++
		cbErr = onMessage(m)
		return cbErr
	})
	if cbErr != nil {
		c.logger.Error("aborting dump", "kind", kind, "family", family, "nParsed", nParsed, "err", cbErr)
		return cbErr
	}
	if err != nil {
		c.logger.Error("error receiving dump reply", "kind", kind, "family", family, "err", err)
		return &DumpError{Kind: kind, Family: family, Op: OpReceive, Err: err}
	}

	c.logger.Debug("drained dump reply", "kind", kind, "family", family, "nParsed", nParsed)

	return nil
}

// collect drives a dump session feeding every message through decode and
// the result into a fresh set. decode reports false for messages to skip.
func collect[T comparable](c *Client, kind ObjectKind, family types.Family,
	decode func(netlink.Message) (T, bool, error)) (*types.Set[T], error) {
	c.observer.DumpStarted(kind, family)

	set := types.NewSet[T]()
	err := c.dump(kind, family, func(m netlink.Message) error {
		if m.Header.Type != netlink.HeaderType(kindReply[kind]) {
			c.logger.Debug("skipping unexpected message", "kind", kind, "type", m.Header.Type)
			return nil
		}

		rec, ok, err := decode(m)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		c.observer.RecordDecoded(kind, family, set.Insert(rec))
		return nil
	})

	c.observer.DumpFinished(kind, family, set.Len(), err)
	if err != nil {
		return nil, err
	}

	return set, nil
}
