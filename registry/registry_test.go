package registry

import "testing"

func TestNoopIDIsAir(t *testing.T) {
	r := New()
	s, ok := r.Lookup(r.NoopID())
	if !ok || s.Name != AirName {
		t.Fatalf("NoopID did not resolve to air: %+v, ok=%v", s, ok)
	}
}

func TestGetOrCreateRoundTrips(t *testing.T) {
	r := New()
	s := NewBlockState("minecraft:oak_stairs", map[string]string{
		"facing": "east", "half": "top", "waterlogged": "false",
	})
	id := r.GetOrCreate(s)

	got, ok := r.Lookup(id)
	if !ok {
		t.Fatal("lookup of freshly created state failed")
	}
	if got.Canonical() != s.Canonical() {
		t.Errorf("round-trip mismatch: got %s, want %s", got.Canonical(), s.Canonical())
	}
}

func TestGetOrCreateIsIdempotentAndOrderIndependent(t *testing.T) {
	r := New()
	a := NewBlockState("minecraft:oak_stairs", map[string]string{"facing": "east", "half": "top"})
	b := NewBlockState("minecraft:oak_stairs", map[string]string{"half": "top", "facing": "east"})

	id1 := r.GetOrCreate(a)
	id2 := r.GetOrCreate(b)
	if id1 != id2 {
		t.Errorf("same state in different property order got different IDs: %d vs %d", id1, id2)
	}

	before := r.Size()
	r.GetOrCreate(a)
	if r.Size() != before {
		t.Errorf("re-interning an existing state grew the registry from %d to %d", before, r.Size())
	}
}

func TestIDsAreDenseAndFirstSeen(t *testing.T) {
	r := New() // air already occupies ID 0
	first := r.GetOrCreate(NewBlockState("minecraft:stone", nil))
	second := r.GetOrCreate(NewBlockState("minecraft:dirt", nil))

	if first != 1 || second != 2 {
		t.Errorf("expected dense first-seen IDs 1,2 got %d,%d", first, second)
	}
	if int(second) >= r.Size() {
		t.Errorf("block_ids[i] must be < registry.Size(): id=%d size=%d", second, r.Size())
	}
}

func TestFindDoesNotAllocate(t *testing.T) {
	r := New()
	unseen := NewBlockState("minecraft:emerald_block", nil)
	if _, ok := r.Find(unseen); ok {
		t.Fatal("Find reported a state that was never created")
	}
	if r.Size() != 1 { // just air
		t.Errorf("Find must never grow the registry, size=%d", r.Size())
	}
}

func TestKnownProperty(t *testing.T) {
	r := New()
	r.RegisterKnownProperty("minecraft:oak_stairs", "facing")

	if !r.IsKnownProperty("minecraft:oak_stairs", "facing") {
		t.Error("registered property reported unknown")
	}
	if r.IsKnownProperty("minecraft:oak_stairs", "bogus_future_property") {
		t.Error("unregistered property on a tracked block reported known")
	}
	if !r.IsKnownProperty("minecraft:never_mentioned", "whatever") {
		t.Error("block with no registered properties should be permissive")
	}
}
