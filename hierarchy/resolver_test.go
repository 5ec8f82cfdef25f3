package hierarchy

import (
	"sync"
	"testing"

	"github.com/efsa/foodex2validator/catalog"
)

func buildChain(t *testing.T) *catalog.MemoryStore {
	t.Helper()
	s := catalog.NewMemoryStore()
	// root <- mid <- leaf, in hierarchy "process"
	s.PutMember("process", "ROOT0")
	s.PutParent("process", "MID00", "ROOT0")
	s.PutParent("process", "LEAF0", "MID00")
	return s
}

func TestResolver_Ancestors(t *testing.T) {
	r := New(buildChain(t), 16)
	ancestors, err := r.Ancestors("LEAF0", "process")
	if err != nil {
		t.Fatalf("Ancestors() error = %v", err)
	}
	want := []string{"MID00", "ROOT0"}
	if len(ancestors) != len(want) || ancestors[0] != want[0] || ancestors[1] != want[1] {
		t.Errorf("Ancestors() = %v; want %v", ancestors, want)
	}
}

func TestResolver_Ancestors_Root(t *testing.T) {
	r := New(buildChain(t), 16)
	ancestors, err := r.Ancestors("ROOT0", "process")
	if err != nil {
		t.Fatalf("Ancestors() error = %v", err)
	}
	if len(ancestors) != 0 {
		t.Errorf("Ancestors(root) = %v; want empty", ancestors)
	}
}

func TestResolver_IsAncestor_Irreflexive(t *testing.T) {
	r := New(buildChain(t), 16)
	is, err := r.IsAncestor("LEAF0", "LEAF0", "process")
	if err != nil {
		t.Fatalf("IsAncestor() error = %v", err)
	}
	if is {
		t.Error("IsAncestor(x, x, H) must be false")
	}
}

func TestResolver_IsAncestor(t *testing.T) {
	r := New(buildChain(t), 16)
	is, err := r.IsAncestor("ROOT0", "LEAF0", "process")
	if err != nil {
		t.Fatalf("IsAncestor() error = %v", err)
	}
	if !is {
		t.Error("ROOT0 should be an ancestor of LEAF0")
	}
}

func TestResolver_AreSiblings(t *testing.T) {
	s := buildChain(t)
	s.PutParent("process", "LEAF1", "MID00")
	r := New(s, 16)

	if !r.AreSiblings("LEAF0", "LEAF1", "process") {
		t.Error("LEAF0 and LEAF1 should be siblings")
	}
	if r.AreSiblings("LEAF0", "MID00", "process") {
		t.Error("LEAF0 and MID00 should not be siblings")
	}
}

func TestResolver_IsParentOf(t *testing.T) {
	r := New(buildChain(t), 16)
	if !r.IsParentOf("MID00", "LEAF0", "process") {
		t.Error("MID00 should be the direct parent of LEAF0")
	}
	if r.IsParentOf("ROOT0", "LEAF0", "process") {
		t.Error("ROOT0 is an ancestor but not the direct parent of LEAF0")
	}
}

func TestResolver_CycleDetected(t *testing.T) {
	s := catalog.NewMemoryStore()
	s.PutParent("process", "A", "B")
	s.PutParent("process", "B", "A")

	r := New(s, 16)
	_, err := r.Ancestors("A", "process")
	if err == nil {
		t.Fatal("expected a CatalogError for a cyclic parent chain")
	}
	if _, ok := err.(*CatalogError); !ok {
		t.Errorf("error type = %T; want *CatalogError", err)
	}
}

func TestResolver_AncestorsInclusive(t *testing.T) {
	r := New(buildChain(t), 16)
	ancestors, err := r.AncestorsInclusive("LEAF0", "process")
	if err != nil {
		t.Fatalf("AncestorsInclusive() error = %v", err)
	}
	want := []string{"LEAF0", "MID00", "ROOT0"}
	for i, w := range want {
		if ancestors[i] != w {
			t.Errorf("AncestorsInclusive()[%d] = %q; want %q", i, ancestors[i], w)
		}
	}
}

func TestResolver_CacheCallbacks(t *testing.T) {
	r := New(buildChain(t), 16)
	var hits, misses int
	var mu sync.Mutex
	r.OnCacheHit(func() { mu.Lock(); hits++; mu.Unlock() })
	r.OnCacheMiss(func() { mu.Lock(); misses++; mu.Unlock() })

	if _, err := r.Ancestors("LEAF0", "process"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Ancestors("LEAF0", "process"); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if misses != 1 {
		t.Errorf("misses = %d; want 1", misses)
	}
	if hits != 1 {
		t.Errorf("hits = %d; want 1", hits)
	}
}

func TestResolver_ConcurrentAncestors(t *testing.T) {
	r := New(buildChain(t), 16)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Ancestors("LEAF0", "process"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
