package id

import "testing"

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGeneratorWithLength(8)
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if len(first) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}

func TestNewRandomGenerator_DefaultsLength(t *testing.T) {
	t.Parallel()

	got, err := NewRandomGeneratorWithLength(0).NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(got) != 2*defaultByteLength {
		t.Fatalf("expected %d hex chars, got %q", 2*defaultByteLength, got)
	}
}
