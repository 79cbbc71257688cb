package search

import "testing"

func TestEncodeSort(t *testing.T) {
	tests := []struct {
		by, order, want string
	}{
		{"price", OrderDesc, "-price"},
		{"price", OrderAsc, "price"},
		{"year", "", "year"},
		{"", OrderDesc, ""},
	}
	for _, tt := range tests {
		if got := EncodeSort(tt.by, tt.order); got != tt.want {
			t.Errorf("EncodeSort(%q, %q) = %q, want %q", tt.by, tt.order, got, tt.want)
		}
	}
}

func TestDecodeSort(t *testing.T) {
	tests := []struct {
		key, by, order string
	}{
		{"-price", "price", OrderDesc},
		{"price", "price", OrderAsc},
		{"", "", ""},
		{"-", "", ""},
	}
	for _, tt := range tests {
		by, order := DecodeSort(tt.key)
		if by != tt.by || order != tt.order {
			t.Errorf("DecodeSort(%q) = (%q, %q), want (%q, %q)", tt.key, by, order, tt.by, tt.order)
		}
	}
}

func TestSortOptionsDecodeToKnownPairs(t *testing.T) {
	for _, opt := range SortOptions {
		by, order := DecodeSort(opt.Value)
		if EncodeSort(by, order) != opt.Value {
			t.Errorf("option %q does not round trip", opt.Value)
		}
	}
}
