package random

import "testing"

func TestResolveSeedKeepsConfigured(t *testing.T) {
	seed, generated, err := ResolveSeed(1234)
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed != 1234 || generated {
		t.Fatalf("ResolveSeed(1234) = %d, %v, want 1234, false", seed, generated)
	}
}

func TestResolveSeedGeneratesWhenZero(t *testing.T) {
	_, generated, err := ResolveSeed(0)
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if !generated {
		t.Fatal("expected generated seed")
	}
}

func TestNewSeedVaries(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 4; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		seen[seed] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct seeds, got %d unique", len(seen))
	}
}
