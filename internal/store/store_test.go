package store

import (
	"testing"

	"github.com/rcliao/merchant-memory/internal/model"
)

func merchant(id string, items ...string) model.MerchantSnapshot {
	m := model.MerchantSnapshot{Identity: id, DisplayName: id, PriceMultiplier: 0.35}
	for _, name := range items {
		m.Items = append(m.Items, model.NewItem(name, 1, 10, false, "Misc"))
	}
	return m
}

func itemNames(m model.MerchantSnapshot) []string {
	var names []string
	for _, it := range m.Items {
		names = append(names, it.DisplayName)
	}
	return names
}

func TestUpsertAndGet(t *testing.T) {
	s := New()
	s.Upsert("m1", merchant("m1", "A", "B"))

	got, ok := s.Get("m1")
	if !ok {
		t.Fatal("expected m1 to be stored")
	}
	if len(got.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(got.Items))
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing merchant to be absent")
	}
}

func TestUpsertOverwritesWithoutMerge(t *testing.T) {
	s := New()
	s.Upsert("m1", merchant("m1", "A", "B"))
	s.Upsert("m1", merchant("m1", "C"))

	got, _ := s.Get("m1")
	names := itemNames(got)
	if len(names) != 1 || names[0] != "C" {
		t.Errorf("expected only [C], got %v", names)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 merchant, got %d", s.Len())
	}
}

func TestDuplicateItemsKept(t *testing.T) {
	s := New()
	s.Upsert("m1", merchant("m1", "torch", "torch"))

	got, _ := s.Get("m1")
	if len(got.Items) != 2 {
		t.Errorf("expected duplicate items kept, got %v", itemNames(got))
	}
}

func TestIsEmptySticky(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Fatal("expected new store to be empty")
	}
	s.Upsert("m1", merchant("m1"))
	if s.IsEmpty() {
		t.Fatal("expected store to be non-empty after upsert")
	}
	s.All()
	s.Get("m1")
	if s.IsEmpty() {
		t.Error("expected store to stay non-empty after reads")
	}
}

func TestStoredSnapshotIsolated(t *testing.T) {
	s := New()
	m := merchant("m1", "A")
	s.Upsert("m1", m)
	m.Items[0].DisplayName = "mutated"

	got, _ := s.Get("m1")
	if got.Items[0].DisplayName != "A" {
		t.Error("expected stored snapshot unaffected by caller mutation")
	}
	got.Items[0].DisplayName = "mutated again"
	again, _ := s.Get("m1")
	if again.Items[0].DisplayName != "A" {
		t.Error("expected stored snapshot unaffected by reader mutation")
	}
}

func TestUpsertKeysByIdentity(t *testing.T) {
	s := New()
	s.Upsert("m1", merchant("other", "A"))

	got, ok := s.Get("m1")
	if !ok || got.Identity != "m1" {
		t.Errorf("expected identity m1, got %+v", got)
	}
}

func TestAll(t *testing.T) {
	s := New()
	s.Upsert("m1", merchant("m1", "A"))
	s.Upsert("m2", merchant("m2", "B"))
	s.Upsert("m1", merchant("m1", "C"))

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 merchants, got %d", len(all))
	}
}

func TestExportReplace(t *testing.T) {
	src := New()
	src.Upsert("m1", merchant("m1", "A"))
	src.Upsert("m2", merchant("m2", "B"))

	dst := New()
	dst.Replace(src.Export())
	if dst.IsEmpty() || dst.Len() != 2 {
		t.Fatalf("expected 2 merchants after replace, got %d", dst.Len())
	}

	dst.Replace(nil)
	if !dst.IsEmpty() {
		t.Error("expected empty store after replacing with nothing")
	}
}

func TestStats(t *testing.T) {
	s := New()
	a := merchant("m1", "A", "B")
	a.CanRestock = true
	s.Upsert("m1", a)
	b := merchant("m2", "C")
	b.Items[0].Category = "Food"
	s.Upsert("m2", b)

	st := s.Stats()
	if st.Merchants != 2 || st.Restockers != 1 || st.Items != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if len(st.Categories) != 2 || st.Categories[0].Category != "Misc" || st.Categories[0].Items != 2 {
		t.Errorf("unexpected categories %+v", st.Categories)
	}
}
