package types

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Option holds a value that may be absent. Unlike a pointer it is comparable
// by value, which keeps records usable as map keys.
type Option[T comparable] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T comparable](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T comparable]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Option[T]) Present() bool {
	return o.ok
}

// Equal lets github.com/google/go-cmp compare options without peeking into
// unexported fields.
func (o Option[T]) Equal(other Option[T]) bool {
	return o == other
}

// Or returns the wrapped value or def when absent.
func (o Option[T]) Or(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.ok {
		return "<none>"
	}
	return fmt.Sprint(o.value)
}

func (o Option[T]) LogValue() slog.Value {
	if !o.ok {
		return slog.StringValue("<none>")
	}
	return slog.AnyValue(o.value)
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Option[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)

	return nil
}

func (o Option[T]) MarshalYAML() (interface{}, error) {
	if !o.ok {
		return nil, nil
	}
	return o.value, nil
}

func (o *Option[T]) UnmarshalYAML(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "", "~", "null", "Null", "NULL":
		*o = None[T]()
		return nil
	}

	var v T
	if err := yaml.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)

	return nil
}
