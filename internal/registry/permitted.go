package registry

import (
	"slices"
)

// PermittedSet is the whitelist of per-locale attribute identifiers handed to
// mass-assignment policies. It behaves as a set: order and duplicates in the
// inputs do not matter.
type PermittedSet struct {
	items []string
}

// NewPermittedSet collects items, dropping empty strings and duplicates.
func NewPermittedSet(items ...string) PermittedSet {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	slices.Sort(out)
	return PermittedSet{items: slices.Compact(out)}
}

// Union returns the set holding the identifiers of both sets.
func (s PermittedSet) Union(other PermittedSet) PermittedSet {
	combined := make([]string, 0, len(s.items)+len(other.items))
	combined = append(combined, s.items...)
	combined = append(combined, other.items...)
	return NewPermittedSet(combined...)
}

// Contains reports whether identifier is permitted.
func (s PermittedSet) Contains(identifier string) bool {
	_, found := slices.BinarySearch(s.items, identifier)
	return found
}

// Items returns the identifiers in sorted order.
func (s PermittedSet) Items() []string {
	return append([]string(nil), s.items...)
}

func (s PermittedSet) Len() int {
	return len(s.items)
}

// Equal reports whether both sets hold the same identifiers.
func (s PermittedSet) Equal(other PermittedSet) bool {
	return slices.Equal(s.items, other.items)
}
