package scan

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Key identifies one file group. Name is empty when grouping by size
// alone.
type Key struct {
	Name string `json:"name,omitempty"`
	Size int64  `json:"size"`
}

// String formats the key for logs.
func (k Key) String() string {
	if k.Name == "" {
		return fmt.Sprintf("size:%d", k.Size)
	}
	return fmt.Sprintf("%s:%d", k.Name, k.Size)
}

// Group is an ordered set of candidates presumed to hold partial copies
// of the same payload.
type Group struct {
	Key     Key         `json:"key"`
	Members []Candidate `json:"members"`
}

// Paths returns the member paths in group order.
func (g Group) Paths() []string {
	paths := make([]string, len(g.Members))
	for i, m := range g.Members {
		paths[i] = m.Path
	}
	return paths
}

// GroupBy partitions candidates into groups using the given key mode.
// Groups come out sorted by key and members by path, so the result is
// deterministic regardless of discovery order.
func GroupBy(candidates []Candidate, keyMode string) []Group {
	byKey := make(map[Key][]Candidate)
	for _, c := range candidates {
		k := Key{Size: c.Size}
		if keyMode != KeySize {
			k.Name = filepath.Base(c.Path)
		}
		byKey[k] = append(byKey[k], c)
	}

	groups := make([]Group, 0, len(byKey))
	for k, members := range byKey {
		sort.Slice(members, func(i, j int) bool {
			return members[i].Path < members[j].Path
		})
		groups = append(groups, Group{Key: k, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Key.Name != groups[j].Key.Name {
			return groups[i].Key.Name < groups[j].Key.Name
		}
		return groups[i].Key.Size < groups[j].Key.Size
	})
	return groups
}

// Mergeable filters groups down to those with at least two members, the
// only ones a merge can improve.
func Mergeable(groups []Group) []Group {
	var out []Group
	for _, g := range groups {
		if len(g.Members) >= 2 {
			out = append(out, g)
		}
	}
	return out
}
