package catalog

import "testing"

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"ACTIVE":   StatusActive,
		"active":   StatusActive,
		"Inactive": StatusInactive,
		"INACTIVE": StatusInactive,
	} {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v", in, got, ok)
		}
	}

	for _, in := range []string{"", "all", "DELETED"} {
		if _, ok := ParseStatus(in); ok {
			t.Fatalf("ParseStatus(%q) should not parse", in)
		}
	}
}
