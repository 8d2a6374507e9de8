package types

import (
	"encoding/json"
	"iter"
)

// Set accumulates values of one record kind keeping the order in which each
// distinct value was first inserted. Inserting a value equal to one already
// held changes nothing.
//
// A Set is not safe for concurrent use; every query owns its own.
type Set[T comparable] struct {
	index map[T]struct{}
	order []T
}

func NewSet[T comparable]() *Set[T] {
	return &Set[T]{index: map[T]struct{}{}}
}

// Insert adds v and reports whether it was not already present.
func (s *Set[T]) Insert(v T) bool {
	if s.index == nil {
		s.index = map[T]struct{}{}
	}

	if _, ok := s.index[v]; ok {
		return false
	}

	s.index[v] = struct{}{}
	s.order = append(s.order, v)

	return true
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns a copy of the elements in first-insertion order.
func (s *Set[T]) Values() []T {
	return append([]T(nil), s.order...)
}

func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.order {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Set[T]) MarshalJSON() ([]byte, error) {
	if s.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.order)
}

func (s *Set[T]) MarshalYAML() (interface{}, error) {
	if s.order == nil {
		return []T{}, nil
	}
	return s.order, nil
}
