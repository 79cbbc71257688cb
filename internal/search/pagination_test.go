package search

import "testing"

func TestPaginationBoundaries(t *testing.T) {
	first := NewPagination(45, 1, 20)
	if first.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", first.TotalPages)
	}
	if first.HasPrev {
		t.Error("first page must disable previous")
	}
	if !first.HasNext {
		t.Error("first page must enable next")
	}

	last := NewPagination(45, 3, 20)
	if last.HasNext {
		t.Error("last page must disable next")
	}
	if !last.HasPrev {
		t.Error("last page must enable previous")
	}
	if !last.Visible() {
		t.Error("45 results over 20 per page must show controls")
	}
}

func TestPaginationEmpty(t *testing.T) {
	p := NewPagination(0, 1, 20)
	if p.TotalPages != 0 || p.HasNext || p.HasPrev || p.Visible() {
		t.Errorf("unexpected pagination for empty result: %+v", p)
	}
}
