// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic helpers the standard [slices] package lacks.
// Services use them to batch ids for lookups and to project rows into views.
package slice

// Map projects every element with fn. A nil input stays nil.
func Map[T, U any](in []T, fn func(T) U) []U {
	if in == nil {
		return nil
	}
	out := make([]U, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}

// Filter keeps the elements for which keep is true, preserving order.
func Filter[T any](in []T, keep func(T) bool) []T {
	if in == nil {
		return nil
	}
	var out []T
	for _, item := range in {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Unique drops repeated values, keeping the first occurrence of each.
func Unique[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, item := range in {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// IndexBy maps key(item) to item; the last duplicate wins.
func IndexBy[T any, K comparable](in []T, key func(T) K) map[K]T {
	index := make(map[K]T, len(in))
	for _, item := range in {
		index[key(item)] = item
	}
	return index
}
