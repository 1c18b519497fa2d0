// internal/domain/orderedref/orderedref.go

// Package orderedref provides the mutation primitives for ordered
// reference lists: embedded lists of foreign entity ids whose order is
// display order. Lists are changed by appending and removing values,
// never by replacing the whole list from a possibly-stale copy.
//
// The Mongo stores apply the same semantics server-side with $push and
// $pull; these helpers exist for in-process consumers (drift checks,
// test fakes) that need identical behavior on plain slices.
package orderedref

import "slices"

// Append returns list with id appended. If id is already present the
// list is returned unchanged, preserving the exactly-once invariant.
func Append[ID comparable](list []ID, id ID) []ID {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}

// InsertAt returns list with id inserted at pos, clamped to the list
// bounds. A duplicate id is first removed so the value moves rather
// than repeats.
func InsertAt[ID comparable](list []ID, id ID, pos int) []ID {
	list = Remove(list, id)
	if pos < 0 {
		pos = 0
	}
	if pos > len(list) {
		pos = len(list)
	}
	return slices.Insert(slices.Clone(list), pos, id)
}

// Remove returns list with every occurrence of id removed. Removing an
// absent value is a no-op, which is what makes compensating removals
// idempotent.
func Remove[ID comparable](list []ID, id ID) []ID {
	out := make([]ID, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Contains reports whether id is present in list.
func Contains[ID comparable](list []ID, id ID) bool {
	return slices.Contains(list, id)
}

// Duplicates returns the ids that appear more than once, in first-seen
// order. A healthy order list returns nil.
func Duplicates[ID comparable](list []ID) []ID {
	seen := make(map[ID]int, len(list))
	var dups []ID
	for _, v := range list {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}
	return dups
}

// Missing returns the ids in want that are absent from list, in the
// order they appear in want.
func Missing[ID comparable](list, want []ID) []ID {
	var out []ID
	for _, v := range want {
		if !slices.Contains(list, v) {
			out = append(out, v)
		}
	}
	return out
}

// Orphaned returns the ids in list that are absent from valid, in list
// order.
func Orphaned[ID comparable](list, valid []ID) []ID {
	var out []ID
	for _, v := range list {
		if !slices.Contains(valid, v) {
			out = append(out, v)
		}
	}
	return out
}
