package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ventmash/fancatalog/internal/catalog"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Type: "Осевой", Model: "ВО-06", Size: "№2,5", Price: fl(30)},
		{ID: "2", Type: "Центробежный", Model: "ВЦ-14", Price: nil},
		{ID: "3", Type: "Осевой", Model: "ВО-12", Price: fl(10)},
	}
}

func TestMemory_List(t *testing.T) {
	m := NewMemory(testProducts())

	got, err := m.List(context.Background(), catalog.Filter{Type: "Осевой"}, catalog.SortPriceAsc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "3" || got[1].ID != "1" {
		t.Errorf("order = %s, %s; want 3, 1", got[0].ID, got[1].ID)
	}
}

func TestMemory_Get(t *testing.T) {
	m := NewMemory([]catalog.Product{
		{ID: "1", Model: "ВО 06-300", Meta: catalog.Meta{ModelSlug: "во-06-300"}},
	})

	for _, identifier := range []string{"1", "во 06-300", "ВО/06/300"} {
		if _, err := m.Get(context.Background(), identifier); err != nil {
			t.Errorf("Get(%q): %v", identifier, err)
		}
	}

	_, err := m.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get miss = %v, want ErrNotFound", err)
	}
}

func TestMemory_Count(t *testing.T) {
	m := NewMemory(testProducts())
	n, err := m.Count(context.Background())
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v; want 3", n, err)
	}
}

func TestMemory_Replace(t *testing.T) {
	m := NewMemory(testProducts())
	m.Replace([]catalog.Product{{ID: "9", Model: "New"}})

	n, _ := m.Count(context.Background())
	if n != 1 {
		t.Errorf("Count after Replace = %d, want 1", n)
	}
	if _, err := m.Get(context.Background(), "9"); err != nil {
		t.Errorf("new entry missing after Replace: %v", err)
	}
	if _, err := m.Get(context.Background(), "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old entry still visible after Replace: %v", err)
	}
}

func TestMemory_DuplicateSlugLastRowWins(t *testing.T) {
	m := NewMemory([]catalog.Product{
		{ID: "1", Model: "Dup", Meta: catalog.Meta{ModelSlug: "dup"}},
		{ID: "2", Model: "DUP", Meta: catalog.Meta{ModelSlug: "dup"}},
	})

	p, err := m.Get(context.Background(), "dup")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.ID != "2" {
		t.Errorf("got id %s, want the second-loaded row", p.ID)
	}
}
