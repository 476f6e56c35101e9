// Package multiset enumerates sub-multisets of a list whose items carry a
// grouping key.
//
// Items with the same key are indistinguishable: choosing "two of the five
// hydrogens" yields a single sub-multiset, not ten. Enumeration takes 0..k
// copies of each group of k equal-key items and forms the cross product
// across groups.
package multiset

import "gonum.org/v1/gonum/stat/combin"

// Group is a run of items that share a key.
type Group[T any] struct {
	Key   string
	Items []T
}

// Groups partitions items by key, in order of first appearance.
func Groups[T any](items []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Count returns the number of sub-multisets [Subsets] would enumerate,
// including the empty and the full one.
func Count[T any](items []T, key func(T) string) int {
	n := 1
	for _, g := range Groups(items, key) {
		n *= len(g.Items) + 1
	}
	return n
}

// Subsets returns every sub-multiset of items, including the empty one and
// items itself. Groups are visited in first-appearance order with the last
// group varying fastest; within a sub-multiset, items appear group by group.
func Subsets[T any](items []T, key func(T) string) [][]T {
	groups := Groups(items, key)
	if len(groups) == 0 {
		return [][]T{{}}
	}

	lens := make([]int, len(groups))
	for i, g := range groups {
		lens[i] = len(g.Items) + 1
	}

	products := combin.Cartesian(lens)
	out := make([][]T, 0, len(products))
	for _, take := range products {
		var sub []T
		for i, k := range take {
			sub = append(sub, groups[i].Items[:k]...)
		}
		out = append(out, sub)
	}
	return out
}

// SubsetsOfSize returns the sub-multisets with at least min items.
func SubsetsOfSize[T any](items []T, key func(T) string, min int) [][]T {
	var out [][]T
	for _, s := range Subsets(items, key) {
		if len(s) >= min {
			out = append(out, s)
		}
	}
	return out
}
