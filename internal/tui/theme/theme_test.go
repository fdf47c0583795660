package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got.Name)
	}
	if got := ByName("nonexistent"); got.Name != FlexokiDark.Name {
		t.Errorf("ByName(nonexistent) = %q, want default", got.Name)
	}
}

func TestNext_CyclesThroughAll(t *testing.T) {
	name := FlexokiDark.Name
	seen := map[string]bool{}
	for range All {
		seen[name] = true
		name = Next(name).Name
	}
	if len(seen) != len(All) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(All))
	}
	if name != FlexokiDark.Name {
		t.Fatalf("cycle did not wrap, ended on %q", name)
	}
}

func TestNext_UnknownNameDefaults(t *testing.T) {
	if got := Next("nonexistent"); got.Name != FlexokiDark.Name {
		t.Errorf("Next(nonexistent) = %q, want default", got.Name)
	}
}
