// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package token

import "strings"

// Set is an ordered, immutable collection of terminal Kinds that a
// combinator expects at a given point in the grammar. Order is
// reproduced verbatim in "expecting A, B, or C" text, and it decides
// which Kind Contains returns when several members share one ID.
type Set struct {
	kinds []Kind
}

// NewSet builds a Set from the given terminal Kinds, preserving the
// order they were given in and dropping duplicates (first occurrence
// wins).
func NewSet(kinds ...Kind) Set {
	seen := make(map[Kind]bool, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return Set{kinds: out}
}

// Contains reports whether id matches any Kind in the set by comparing
// IDs, not Kinds directly — this is what lets MINUS, SUB, and HYPHEN all
// match a single lexical "-" token while remaining distinct grammar
// roles. On a match it returns the specific Kind from the set whose role
// matched, which is the Kind that should be tagged on the CST leaf.
func (s Set) Contains(id ID) (Kind, bool) {
	for _, k := range s.kinds {
		if k.ID() == id {
			return k, true
		}
	}
	return ERROR, false
}

// Kinds returns the set's members in insertion order.
func (s Set) Kinds() []Kind {
	out := make([]Kind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Len reports the number of distinct Kinds in the set.
func (s Set) Len() int {
	return len(s.kinds)
}

// Describe renders the set as a diagnostic phrase: a single kind's own
// description, or an "or"-joined list of all members' descriptions for
// more than one, matching the Rust original's itertools::join-based
// cascade: two members are joined with " or "; three or more join
// all-but-last with ", ", then ", or " before the last.
func (s Set) Describe() string {
	switch len(s.kinds) {
	case 0:
		return ""
	case 1:
		return s.kinds[0].Description()
	}
	descs := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		descs[i] = k.Description()
	}
	if len(descs) == 2 {
		return descs[0] + " or " + descs[1]
	}
	return strings.Join(descs[:len(descs)-1], ", ") + ", or " + descs[len(descs)-1]
}
