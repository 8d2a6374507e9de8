package types

import (
	"fmt"
	"log/slog"

	"github.com/fatih/structs"
)

// Records are plain comparable values: two records describing the same
// kernel object compare equal with == and collapse when inserted into a Set.
// They hold no pointers, slices or maps and are never mutated once built.

// InterfaceRecord describes a network interface (RTM_NEWLINK).
type InterfaceRecord struct {
	Index     int32          `json:"interfaceIndex" yaml:"interfaceIndex" structs:"interface_index"`
	Name      string         `json:"interfaceName" yaml:"interfaceName" structs:"interface_name"`
	Address   Option[string] `json:"address" yaml:"address" structs:"address"`
	Broadcast Option[string] `json:"broadcast" yaml:"broadcast" structs:"broadcast"`
}

// AddressRecord describes an interface address (RTM_NEWADDR).
type AddressRecord struct {
	Family       Family         `json:"family" yaml:"family" structs:"family"`
	Index        int32          `json:"interfaceIndex" yaml:"interfaceIndex" structs:"interface_index"`
	Name         string         `json:"interfaceName" yaml:"interfaceName" structs:"interface_name"`
	PrefixLength uint8          `json:"prefixLength" yaml:"prefixLength" structs:"prefix"`
	Scope        uint8          `json:"scope" yaml:"scope" structs:"scope"`
	Address      Option[string] `json:"address" yaml:"address" structs:"address"`
	Local        Option[string] `json:"local" yaml:"local" structs:"local"`
	Broadcast    Option[string] `json:"broadcast" yaml:"broadcast" structs:"broadcast"`
	Anycast      Option[string] `json:"anycast" yaml:"anycast" structs:"anycast"`
}

// Link pairs an interface index with the name it resolved to. Keeping both in
// one value guarantees a route's index and name are present or absent
// together.
type Link struct {
	Index uint32 `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

func (l Link) String() string {
	return fmt.Sprintf("%s(%d)", l.Name, l.Index)
}

// RouteRecord describes a routing table entry (RTM_NEWROUTE).
type RouteRecord struct {
	Family            Family         `json:"family" yaml:"family" structs:"family"`
	Destination       Option[string] `json:"destination" yaml:"destination" structs:"dst"`
	DestinationLength uint8          `json:"destinationLength" yaml:"destinationLength" structs:"dst_len"`
	Source            Option[string] `json:"source" yaml:"source" structs:"src"`
	SourceLength      uint8          `json:"sourceLength" yaml:"sourceLength" structs:"src_len"`
	InputInterface    Option[Link]   `json:"inputInterface" yaml:"inputInterface" structs:"iif"`
	OutputInterface   Option[Link]   `json:"outputInterface" yaml:"outputInterface" structs:"oif"`
	Gateway           Option[string] `json:"gateway" yaml:"gateway" structs:"gate"`
	Priority          Option[uint32] `json:"priority" yaml:"priority" structs:"pri"`
	Table             uint32         `json:"table" yaml:"table" structs:"table"`
}

func (r InterfaceRecord) LogValue() slog.Value { return fieldsValue(r) }
func (r AddressRecord) LogValue() slog.Value { return fieldsValue(r) }
func (r RouteRecord) LogValue() slog.Value { return fieldsValue(r) }

// fieldsValue turns every exported field of a record into a slog attribute
// keyed by its structs tag, in declaration order.
func fieldsValue(r any) slog.Value {
	fields := structs.New(r).Fields()

	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if !f.IsExported() {
			continue
		}
		key := f.Tag("structs")
		if key == "" || key == "-" {
			key = f.Name()
		}
		attrs = append(attrs, slog.Any(key, f.Value()))
	}

	return slog.GroupValue(attrs...)
}
