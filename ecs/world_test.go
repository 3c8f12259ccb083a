package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/customrp/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.Index() != old.Index() {
		t.Fatalf("expected id reuse, got %s after %s", reused, old)
	}
	if reused == old {
		t.Fatalf("expected a new generation for reused id")
	}
	if Has(w, old, k) {
		t.Fatalf("stale handle must not see components")
	}
	if Has(w, reused, k) {
		t.Fatalf("destroyed entity's components must not leak to the reused id")
	}
	if err := Add(w, old, k, intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				got := w.Query(h2.Kind())
				if len(got) != 2 || got[0] != e1 || got[1] != e2 {
					t.Fatalf("expected [e1 e2] in id order, got %v", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "replace_value",
			setup: func() error { return Add(w, e2, h1.Kind(), intPtr(7)) },
			check: func(t *testing.T) {
				if err := Add(w, e2, h1.Kind(), intPtr(8)); err != nil {
					t.Fatalf("replace should succeed for non-unique kind: %v", err)
				}
				v, _ := Get(w, e2, h1.Kind())
				if *v != 8 {
					t.Fatalf("expected 8, got %d", *v)
				}
			},
			teardown: func() bool { return Remove(w, e2, h1.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[int](w, e, component.NewComponentKind[int](), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		ents = append(ents, e)
		*v *= 10
	})

	if len(ents) != 2 || ents[0] != e1 || ents[1] != e3 {
		t.Fatalf("expected [e1 e3], got %v (e2=%s)", ents, e2)
	}
	if v, _ := Get(w, e3, h.Kind()); *v != 30 {
		t.Fatalf("expected in-place mutation, got %d", *v)
	}
}

func TestForEach2Intersection(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	for _, step := range []error{
		Add(w, e1, ka, intPtr(1)),
		Add(w, e2, ka, intPtr(2)),
		Add(w, e2, kb, stringPtr("two")),
		Add(w, e3, kb, stringPtr("three")),
	} {
		if step != nil {
			t.Fatal(step)
		}
	}

	var got []Entity
	ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
		got = append(got, e)
		if *a != 2 || *b != "two" {
			t.Fatalf("unexpected values %d %q", *a, *b)
		}
	})
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected only e2, got %v", got)
	}

	if first, ok := w.First(kb); !ok || first != e2 {
		t.Fatalf("expected First to return e2, got %v ok=%v", first, ok)
	}
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	var seen int
	s := NewScheduler(systemFunc(func(w *World) {
		seen = len(w.Events().Pending())
	}))

	CreateEntity(w)
	s.Update(w)
	if seen != 1 {
		t.Fatalf("expected 1 pending event during update, got %d", seen)
	}
	if n := len(w.Events().Pending()); n != 0 {
		t.Fatalf("expected events flushed after update, got %d", n)
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
