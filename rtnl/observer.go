package rtnl

import "github.com/scitags/rtquery/types"

// Observer is notified about the lifecycle of every dump session. It must be
// safe for concurrent use when a Client is shared.
type Observer interface {
	DumpStarted(kind ObjectKind, family types.Family)

	// RecordDecoded is called once per decoded record; inserted is false
	// when a value-equal record was already part of the result.
	RecordDecoded(kind ObjectKind, family types.Family, inserted bool)

	// DumpFinished is called with the result size, or with the error that
	// ended the session.
	DumpFinished(kind ObjectKind, family types.Family, n int, err error)
}

type nopObserver struct{}

func (nopObserver) DumpStarted(ObjectKind, types.Family) {}
func (nopObserver) RecordDecoded(ObjectKind, types.Family, bool) {}
func (nopObserver) DumpFinished(ObjectKind, types.Family, int, error) {}
