package draft

import "testing"

type scoreDraft struct {
	Home int
	Away int
}

func TestBuffer_BeginOverwrites(t *testing.T) {
	b := NewBuffer[scoreDraft]()

	rev1 := b.Begin("m1", scoreDraft{Home: 1, Away: 0})
	rev2 := b.Begin("m1", scoreDraft{Home: 2, Away: 2})
	if rev2 <= rev1 {
		t.Fatalf("overwrite must bump revision: %d then %d", rev1, rev2)
	}

	value, _, ok := b.Get("m1")
	if !ok || value.Home != 2 || value.Away != 2 {
		t.Fatalf("expected last writer to win, got %+v ok=%t", value, ok)
	}
}

func TestBuffer_IndependentEntries(t *testing.T) {
	b := NewBuffer[scoreDraft]()
	b.Begin("m1", scoreDraft{Home: 1})
	b.Begin("m2", scoreDraft{Home: 3})

	b.Cancel("m1")

	if _, _, ok := b.Get("m1"); ok {
		t.Fatal("canceled draft must be gone")
	}
	if value, _, ok := b.Get("m2"); !ok || value.Home != 3 {
		t.Fatalf("sibling draft must survive cancel, got %+v ok=%t", value, ok)
	}
}

func TestBuffer_UpdateRequiresDraft(t *testing.T) {
	b := NewBuffer[scoreDraft]()

	if _, ok := b.Update("missing", func(d *scoreDraft) { d.Home = 1 }); ok {
		t.Fatal("update without a draft must report false")
	}

	b.Begin("m1", scoreDraft{})
	rev, ok := b.Update("m1", func(d *scoreDraft) { d.Away = 4 })
	if !ok || rev != 2 {
		t.Fatalf("expected update at revision 2, got rev=%d ok=%t", rev, ok)
	}
	value, _, _ := b.Get("m1")
	if value.Away != 4 {
		t.Fatalf("expected in-place mutation, got %+v", value)
	}
}

func TestBuffer_ResolveDiscardsStaleResult(t *testing.T) {
	b := NewBuffer[scoreDraft]()
	rev := b.Begin("m1", scoreDraft{Home: 1})

	// The user cancels while the commit call is still in flight.
	b.Cancel("m1")

	if b.Resolve("m1", rev) {
		t.Fatal("resolve after cancel must report the result as discardable")
	}
}

func TestBuffer_ResolveDiscardsAfterReedit(t *testing.T) {
	b := NewBuffer[scoreDraft]()
	rev := b.Begin("m1", scoreDraft{Home: 1})

	// A newer edit supersedes the in-flight commit.
	b.Update("m1", func(d *scoreDraft) { d.Home = 5 })

	if b.Resolve("m1", rev) {
		t.Fatal("resolve with a stale revision must fail")
	}
	if _, _, ok := b.Get("m1"); !ok {
		t.Fatal("newer draft must survive a stale resolve")
	}
}

func TestBuffer_ResolveClearsMatchingDraft(t *testing.T) {
	b := NewBuffer[scoreDraft]()
	rev := b.Begin("m1", scoreDraft{Home: 1})

	if !b.Resolve("m1", rev) {
		t.Fatal("matching resolve must succeed")
	}
	if _, _, ok := b.Get("m1"); ok {
		t.Fatal("resolved draft must be discarded")
	}
}

func TestBuffer_Snapshot(t *testing.T) {
	b := NewBuffer[scoreDraft]()
	b.Begin("m1", scoreDraft{Home: 1})
	b.Begin("m2", scoreDraft{Home: 2})

	snap := b.Snapshot()
	if len(snap) != 2 || snap["m1"].Home != 1 || snap["m2"].Home != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Mutating the snapshot must not touch the buffer.
	snap["m1"] = scoreDraft{Home: 99}
	value, _, _ := b.Get("m1")
	if value.Home != 1 {
		t.Fatalf("snapshot mutation leaked into buffer: %+v", value)
	}
}
