package flare

import "testing"

func TestRegistry_AddRemove(t *testing.T) {
	r := newRegistry()
	l := ListenerFunc(func(any) error { return nil })

	if !r.add("a", 1, l, false) {
		t.Fatal("expected first add to succeed")
	}
	if r.add("a", 1, l, false) {
		t.Error("expected duplicate identity add to be a no-op")
	}
	if got := r.count("a"); got != 1 {
		t.Errorf("expected count 1, got %d", got)
	}

	if !r.remove("a", 1) {
		t.Error("expected remove of present identity to report true")
	}
	if r.remove("a", 1) {
		t.Error("expected second remove to be a no-op")
	}
	if got := r.count("a"); got != 0 {
		t.Errorf("expected count 0, got %d", got)
	}
}

func TestRegistry_PrunesEmptyCategories(t *testing.T) {
	r := newRegistry()
	l := ListenerFunc(func(any) error { return nil })

	r.add("a", 1, l, false)
	r.remove("a", 1)

	// A category with zero listeners must be indistinguishable from
	// one that never existed: no retained map entries.
	if _, exists := r.cats["a"]; exists {
		t.Error("expected empty category to be pruned from cats")
	}
	if _, exists := r.ids["a"]; exists {
		t.Error("expected empty category to be pruned from ids")
	}
}

func TestRegistry_SnapshotIsFrozen(t *testing.T) {
	r := newRegistry()
	l1 := ListenerFunc(func(any) error { return nil })
	l2 := ListenerFunc(func(any) error { return nil })

	r.add("a", 1, l1, false)
	snap := r.snapshot("a")
	r.add("a", 2, l2, false)

	if len(snap) != 1 {
		t.Errorf("expected snapshot unaffected by later add, got %d entries", len(snap))
	}
	if got := r.count("a"); got != 2 {
		t.Errorf("expected live count 2, got %d", got)
	}
}

func TestRegistry_SnapshotPreservesOrder(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 5; i++ {
		i := i
		r.add("a", i, ListenerFunc(func(any) error { return nil }), false)
	}

	snap := r.snapshot("a")
	if len(snap) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(snap))
	}
	for i, e := range snap {
		if e.id != i {
			t.Errorf("expected entry %d to have id %d, got %v", i, i, e.id)
		}
	}
}

func TestRegistry_RemoveEntry_KeepsReregistration(t *testing.T) {
	r := newRegistry()
	l := ListenerFunc(func(any) error { return nil })

	r.add("a", 1, l, true)
	snap := r.snapshot("a")

	// Simulate a once listener re-registering itself mid-broadcast:
	// removing the fired entry must not clobber the fresh one.
	r.remove("a", 1)
	r.add("a", 1, l, false)
	r.removeEntry("a", snap[0])

	if got := r.count("a"); got != 1 {
		t.Errorf("expected re-registered listener to survive, got count %d", got)
	}
}

func TestRegistry_Wildcard(t *testing.T) {
	r := newRegistry()
	w := WildcardListenerFunc(func(Category, any) error { return nil })

	if !r.addWild(1, w, false) {
		t.Fatal("expected wildcard add to succeed")
	}
	if r.addWild(1, w, false) {
		t.Error("expected duplicate wildcard add to be a no-op")
	}
	if got := r.countWild(); got != 1 {
		t.Errorf("expected wildcard count 1, got %d", got)
	}

	if !r.removeWild(1) {
		t.Error("expected wildcard remove to report true")
	}
	if got := r.countWild(); got != 0 {
		t.Errorf("expected wildcard count 0, got %d", got)
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	r := newRegistry()
	r.add("a", 1, ListenerFunc(func(any) error { return nil }), false)
	r.add("b", 2, ListenerFunc(func(any) error { return nil }), false)
	r.addWild(3, WildcardListenerFunc(func(Category, any) error { return nil }), false)

	r.clearAll()

	if r.count("a") != 0 || r.count("b") != 0 || r.countWild() != 0 {
		t.Error("expected clearAll to empty every registration")
	}
}
