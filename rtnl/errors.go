package rtnl

import (
	"errors"
	"fmt"

	"github.com/scitags/rtquery/types"
)

var (
	// ErrUnknownFamily is returned when a header carries a family other than
	// AF_INET or AF_INET6 where one of them is required.
	ErrUnknownFamily = types.ErrUnknownFamily

	// ErrMissingTable is returned for a route message lacking RTA_TABLE.
	// Every kernel route belongs to exactly one table.
	ErrMissingTable = errors.New("route without a table attribute")

	// ErrMalformedMessage covers short headers, bad attribute tables and
	// attribute payloads of the wrong size.
	ErrMalformedMessage = errors.New("malformed rtnetlink message")

	// ErrDumpInterrupted is returned when the kernel flags a reply with
	// NLM_F_DUMP_INTR: the object set changed while being dumped.
	ErrDumpInterrupted = errors.New("dump interrupted")
)

// Op names the dump session step that failed.
type Op string

const (
	OpOpen    Op = "open"
	OpSubmit  Op = "submit"
	OpReceive Op = "receive"
)

// DumpError is the recoverable failure of a dump session: the transport could
// not be opened, the request could not be submitted or the reply stream
// could not be drained. Callers may retry.
type DumpError struct {
	Kind   ObjectKind
	Family types.Family
	Op     Op
	Err    error
}

func (e *DumpError) Error() string {
	return fmt.Sprintf("error performing %s dump (%s, family %s): %v", e.Kind, e.Op, e.Family, e.Err)
}

func (e *DumpError) Unwrap() error {
	return e.Err
}

// ContractError signals a reply that disagrees with the documented kernel
// message format. It is not expected to happen with a working kernel and
// transport, and no partial result accompanies it.
type ContractError struct {
	Kind ObjectKind
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("kernel contract violated while decoding %s: %v", e.Kind, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func contractError(kind ObjectKind, err error) error {
	return &ContractError{Kind: kind, Err: err}
}
