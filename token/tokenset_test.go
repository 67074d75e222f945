// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package token

import "testing"

func TestSetContains(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		id   ID
		want Kind
		ok   bool
	}{
		{"hyphen as minus", NewSet(MINUS, SUB, HYPHEN), IDHyphen, MINUS, true},
		{"ident present", NewSet(IDENT, STRING_LIT), IDIdent, IDENT, true},
		{"not present", NewSet(RULE_KW), IDImportKw, ERROR, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tc.set.Contains(tc.id)
			if ok != tc.ok {
				t.Fatalf("Contains(%v) ok = %v, want %v", tc.id, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestSetContainsFirstMatchWins(t *testing.T) {
	t.Parallel()
	// MINUS, SUB, and HYPHEN all share IDHyphen; the set returns
	// whichever was listed first, since that's the grammar role the
	// caller asked about first.
	s := NewSet(SUB, MINUS)
	got, ok := s.Contains(IDHyphen)
	if !ok || got != SUB {
		t.Fatalf("Contains = %v, %v, want SUB, true", got, ok)
	}
}

func TestSetDescribe(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want string
	}{
		{"empty", NewSet(), ""},
		{"one", NewSet(RULE_KW), "`rule`"},
		{"two", NewSet(RULE_KW, IMPORT_KW), "`rule` or `import`"},
		{"three", NewSet(RULE_KW, IMPORT_KW, INCLUDE_KW), "`rule`, `import`, or `include`"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.set.Describe(); got != tc.want {
				t.Fatalf("Describe() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSetDropsDuplicates(t *testing.T) {
	t.Parallel()
	s := NewSet(RULE_KW, RULE_KW, IMPORT_KW)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}
