package orderedref_test

import (
	"slices"
	"testing"

	"github.com/kvnhng/boardhub/internal/domain/orderedref"
)

func TestAppend(t *testing.T) {
	list := []string{"a", "b"}

	got := orderedref.Append(list, "c")
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Append: got %v", got)
	}
}

func TestAppend_DuplicateIsNoop(t *testing.T) {
	list := []string{"a", "b"}

	got := orderedref.Append(list, "a")
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected unchanged list, got %v", got)
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name string
		list []string
		id   string
		pos  int
		want []string
	}{
		{"front", []string{"a", "b"}, "x", 0, []string{"x", "a", "b"}},
		{"middle", []string{"a", "b"}, "x", 1, []string{"a", "x", "b"}},
		{"end", []string{"a", "b"}, "x", 2, []string{"a", "b", "x"}},
		{"past end clamps", []string{"a", "b"}, "x", 9, []string{"a", "b", "x"}},
		{"negative clamps", []string{"a", "b"}, "x", -1, []string{"x", "a", "b"}},
		{"existing id moves", []string{"a", "b", "c"}, "c", 0, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderedref.InsertAt(tt.list, tt.id, tt.pos)
			if !slices.Equal(got, tt.want) {
				t.Errorf("InsertAt(%v, %q, %d) = %v, want %v", tt.list, tt.id, tt.pos, got, tt.want)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	list := []string{"a", "b", "a", "c"}

	got := orderedref.Remove(list, "a")
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Remove: got %v", got)
	}
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	list := []string{"a", "b"}

	got := orderedref.Remove(list, "z")
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected unchanged list, got %v", got)
	}
}

func TestDuplicates(t *testing.T) {
	if got := orderedref.Duplicates([]string{"a", "b", "c"}); got != nil {
		t.Errorf("expected nil for clean list, got %v", got)
	}
	if got := orderedref.Duplicates([]string{"a", "b", "a", "b", "a"}); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Duplicates: got %v", got)
	}
}

func TestMissingAndOrphaned(t *testing.T) {
	list := []string{"a", "b", "x"}
	live := []string{"a", "b", "c"}

	if got := orderedref.Missing(list, live); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Missing: got %v", got)
	}
	if got := orderedref.Orphaned(list, live); !slices.Equal(got, []string{"x"}) {
		t.Errorf("Orphaned: got %v", got)
	}
}
