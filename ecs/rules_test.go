package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/customrp/ecs/component"
)

type lens struct{ Focal float64 }
type rig struct{ Name string }
type filter struct{ Strength float64 }
type mount struct{ Slot int }
type shutter struct{ Speed float64 }

var (
	lensKind   = component.NewComponent[lens]().Kind()
	rigKind    = component.NewComponent[rig](component.DisallowMultiple()).Kind()
	filterKind = component.NewComponent[filter](
		component.DisallowMultiple(),
		component.Requires(rigKind, nil),
	).Kind()
	autoFilterKind = component.NewComponent[filter](
		component.Requires(rigKind, func() *rig { return &rig{Name: "default"} }),
		component.Requires(lensKind, func() *lens { return &lens{Focal: 35} }),
	).Kind()
	mountKind   = component.NewComponent[mount](component.Requires(rigKind, nil)).Kind()
	shutterKind = component.NewComponent[shutter](
		component.Requires(lensKind, func() *lens { return &lens{Focal: 35} }),
		component.Requires(mountKind, func() *mount { return &mount{} }),
	).Kind()
)

func TestUniqueKindRejectsSecondInstance(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	first := &rig{Name: "a"}
	if err := Add(w, e, rigKind, first); err != nil {
		t.Fatalf("first add: %v", err)
	}

	tests := []struct {
		name    string
		value   *rig
		wantErr error
	}{
		{name: "same_pointer_updates", value: first},
		{name: "distinct_instance_rejected", value: &rig{Name: "b"}, wantErr: component.ErrDuplicateComponent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Add(w, e, rigKind, tc.value)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			got, _ := Get(w, e, rigKind)
			if got != first {
				t.Fatalf("original instance must stay attached")
			}
		})
	}
}

func TestRequirementWithoutDefaultIsRejected(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	err := Add(w, e, filterKind, &filter{Strength: 1})
	if !errors.Is(err, component.ErrMissingRequirement) {
		t.Fatalf("expected ErrMissingRequirement, got %v", err)
	}
	if Has(w, e, filterKind) {
		t.Fatalf("rejected component must not be attached")
	}

	if err := Add(w, e, rigKind, &rig{}); err != nil {
		t.Fatalf("add rig: %v", err)
	}
	if err := Add(w, e, filterKind, &filter{Strength: 1}); err != nil {
		t.Fatalf("add filter after rig: %v", err)
	}
}

func TestRequirementWithDefaultIsAutoAttached(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	existing := &lens{Focal: 50}
	if err := Add(w, e, lensKind, existing); err != nil {
		t.Fatal(err)
	}

	if err := Add(w, e, autoFilterKind, &filter{}); err != nil {
		t.Fatalf("add: %v", err)
	}

	r, ok := Get(w, e, rigKind)
	if !ok || r.Name != "default" {
		t.Fatalf("expected default rig to be attached, got %+v ok=%v", r, ok)
	}
	l, _ := Get(w, e, lensKind)
	if l != existing {
		t.Fatalf("present requirement must not be replaced")
	}
}

func TestFailedAutoAttachIsRolledBack(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	err := Add(w, e, shutterKind, &shutter{})
	if !errors.Is(err, component.ErrMissingRequirement) {
		t.Fatalf("expected missing requirement, got %v", err)
	}
	for name, has := range map[string]bool{
		"shutter": Has(w, e, shutterKind),
		"lens":    Has(w, e, lensKind),
		"mount":   Has(w, e, mountKind),
	} {
		if has {
			t.Fatalf("%s must not stay attached after a failed add", name)
		}
	}

	existing := &lens{Focal: 50}
	if err := Add(w, e, lensKind, existing); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e, shutterKind, &shutter{}); err == nil {
		t.Fatalf("expected error")
	}
	if l, ok := Get(w, e, lensKind); !ok || l != existing {
		t.Fatalf("components attached before the add must stay")
	}
}

func TestRemoveRefusedWhileRequired(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, autoFilterKind, &filter{}); err != nil {
		t.Fatal(err)
	}

	if Remove(w, e, rigKind) {
		t.Fatalf("rig is required by filter and must not be removable")
	}
	if deps := w.Dependents(e, rigKind.ID()); len(deps) != 1 || deps[0] != autoFilterKind.ID() {
		t.Fatalf("unexpected dependents %v", deps)
	}
	if !Remove(w, e, autoFilterKind) {
		t.Fatalf("filter should be removable")
	}
	if !Remove(w, e, rigKind) {
		t.Fatalf("rig should be removable once nothing requires it")
	}
}

func TestDestroyEntityDetachesDependentsFirst(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, autoFilterKind, &filter{}); err != nil {
		t.Fatal(err)
	}
	w.Events().Drain()

	if !DestroyEntity(w, e) {
		t.Fatalf("destroy failed")
	}

	var removed []component.ComponentID
	for _, evt := range w.Events().Drain() {
		if evt.Type != EventComponentRemoved {
			continue
		}
		removed = append(removed, evt.Data.(ComponentEvent).Component)
	}
	if len(removed) != 3 {
		t.Fatalf("expected 3 removals, got %v", removed)
	}
	if removed[0] != autoFilterKind.ID() {
		t.Fatalf("dependent must be detached first, got order %v", removed)
	}
}
