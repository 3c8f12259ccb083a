package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrDuplicateComponent   = errors.New("ecs: component disallows multiple instances")
	ErrMissingRequirement   = errors.New("ecs: required component missing")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	declare(Descriptor{ID: id, Name: typeName[T]()})
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent declares a component kind. Options describe how the world
// may attach it: whether it is unique per entity and what it depends on.
func NewComponent[T any](opts ...Option) ComponentHandle[T] {
	kind := NewComponentKind[T]()
	if len(opts) > 0 {
		d, _ := Describe(kind.id)
		for _, opt := range opts {
			opt(&d)
		}
		declare(d)
	}
	return ComponentHandle[T]{kind: kind}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// Requirement names a component kind that must be attached before a
// dependent kind. New, when set, builds the default instance the world
// attaches automatically.
type Requirement struct {
	ID  ComponentID
	New func() any
}

// Descriptor is the declared attachment contract of a component kind.
type Descriptor struct {
	ID       ComponentID
	Name     string
	Unique   bool
	Requires []Requirement
}

type Option func(*Descriptor)

// DisallowMultiple rejects attaching a second, distinct instance to an entity.
func DisallowMultiple() Option {
	return func(d *Descriptor) {
		d.Unique = true
	}
}

// Requires declares a dependency on another kind. If newDefault is nil the
// world rejects the attachment when the dependency is absent.
func Requires[T any](kind ComponentKind[T], newDefault func() *T) Option {
	return func(d *Descriptor) {
		req := Requirement{ID: kind.ID()}
		if newDefault != nil {
			req.New = func() any { return newDefault() }
		}
		d.Requires = append(d.Requires, req)
	}
}

var (
	descriptorsMu sync.RWMutex
	descriptors   = map[ComponentID]Descriptor{}
)

func declare(d Descriptor) {
	descriptorsMu.Lock()
	defer descriptorsMu.Unlock()
	descriptors[d.ID] = d
}

// Describe returns the declared contract for id.
func Describe(id ComponentID) (Descriptor, bool) {
	descriptorsMu.RLock()
	defer descriptorsMu.RUnlock()
	d, ok := descriptors[id]
	return d, ok
}

// Name returns a readable name for id, used in error messages.
func Name(id ComponentID) string {
	if d, ok := Describe(id); ok && d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("component#%d", id)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
