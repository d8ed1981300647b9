package bpipe

import (
	"fmt"
	"io"
	"reflect"

	"github.com/cockroachdb/errors"
)

// ErrStateMissing is returned by [Lookup] when no value of the requested type is stored.
var ErrStateMissing = errors.New("state missing")

// Store holds at most one value per type. Values are looked up by the type they were
// stored under: [Store.Set] uses the dynamic type of the value, [Put] the static type
// parameter, which allows storing values under an interface type.
//
// A Store is not safe for concurrent mutation. The shared store of a [Server] is frozen
// when the server is created, after which it may be read from any number of goroutines
// and any attempt to modify it panics. The request-local store is only ever touched by
// the goroutine serving the request.
type Store struct {
	vals   map[reflect.Type]any
	frozen bool
}

// NewStore inits an empty store.
func NewStore() *Store {
	return &Store{vals: make(map[reflect.Type]any)}
}

// Set stores v under its dynamic type, replacing a previous value of that type.
func (s *Store) Set(v any) {
	if v == nil {
		panic("bpipe: cannot store untyped nil")
	}

	s.set(reflect.TypeOf(v), v)
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.vals)
}

// Frozen reports whether the store has become read-only.
func (s *Store) Frozen() bool { return s != nil && s.frozen }

// Put stores v under the type T, replacing a previous value of that type.
func Put[T any](s *Store, v T) {
	s.set(reflect.TypeFor[T](), v)
}

// Get returns the value stored under type T.
func Get[T any](s *Store) (v T, ok bool) {
	if s == nil {
		return v, false
	}

	raw, ok := s.vals[reflect.TypeFor[T]()]
	if !ok {
		return v, false
	}

	v, ok = raw.(T)

	return v, ok
}

// Lookup is like [Get] but returns an error wrapping [ErrStateMissing] when nothing is
// stored under T. Handlers can return the error as-is to fail the request.
func Lookup[T any](s *Store) (T, error) {
	v, ok := Get[T](s)
	if !ok {
		return v, errors.Wrapf(ErrStateMissing, "no value of type %s", reflect.TypeFor[T]())
	}

	return v, nil
}

// MustGet is like [Get] but panics when nothing is stored under T.
func MustGet[T any](s *Store) T {
	v, ok := Get[T](s)
	if !ok {
		panic(fmt.Sprintf("bpipe: no value of type %s in store", reflect.TypeFor[T]()))
	}

	return v
}

func (s *Store) set(typ reflect.Type, v any) {
	if s.frozen {
		panic("bpipe: cannot modify a frozen store")
	}

	if s.vals == nil {
		s.vals = make(map[reflect.Type]any)
	}

	s.vals[typ] = v
}

func (s *Store) freeze() { s.frozen = true }

// closeAll closes every stored value that implements io.Closer.
func (s *Store) closeAll() (err error) {
	for typ, v := range s.vals {
		c, ok := v.(io.Closer)
		if !ok {
			continue
		}

		if cerr := c.Close(); cerr != nil {
			err = errors.CombineErrors(err, errors.Wrapf(cerr, "close %s", typ))
		}
	}

	return err
}
