package glyph

import "testing"

func TestLookupKnownLetters(t *testing.T) {
	tests := []struct {
		char rune
		role string
		prop PhysicalProperty
	}{
		{'A', "Frame", Stability},
		{'B', "Dual Lobes", Containment},
		{'C', "Open Arc", Flow},
		{'K', "Shear", Stop},
		{'P', "Bulb", Energy},
		{'Z', "Zigzag", Alignment},
	}
	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			g := Lookup(tt.char)
			if g.Role != tt.role {
				t.Errorf("role: got %q, want %q", g.Role, tt.role)
			}
			if g.Property != tt.prop {
				t.Errorf("property: got %q, want %q", g.Property, tt.prop)
			}
			if g.Char != string(tt.char) {
				t.Errorf("char: got %q, want %q", g.Char, string(tt.char))
			}
		})
	}
}

func TestLookupMissSynthesizesUnknown(t *testing.T) {
	for _, c := range []rune{'a', '7', '?', 'É'} {
		g := Lookup(c)
		if g.Property != Unknown {
			t.Errorf("%q: expected UNKNOWN, got %q", c, g.Property)
		}
		if g.Role != "UNK" {
			t.Errorf("%q: expected role UNK, got %q", c, g.Role)
		}
	}
}

func TestAllCoversAlphabetInOrder(t *testing.T) {
	all := All()
	if len(all) != 26 {
		t.Fatalf("expected 26 glyphs, got %d", len(all))
	}
	for i, g := range all {
		want := string(rune('A' + i))
		if g.Char != want {
			t.Errorf("index %d: got %q, want %q", i, g.Char, want)
		}
		if g.Property == Unknown {
			t.Errorf("%s has no property", g.Char)
		}
	}

	// Mutating the copy must not leak into the table.
	all[0].Role = "changed"
	if Lookup('A').Role != "Frame" {
		t.Error("All() returned shared storage")
	}
}
