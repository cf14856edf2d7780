// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

// bound - Token bounds for one pending positional. A hi of -1 means no
// upper bound.
type bound struct {
	lo int
	hi int
}

// allocate - Assigns a run of n consecutive candidate tokens to an ordered
// list of pending positional bounds and returns how many tokens each gets.
//
// Allocation is greedy from the first spec forward, but before any spec
// consumes beyond its minimum, the sum of the minimums still required by
// all later specs (plus the caller provided reserved amount) is held back,
// so a variable upper bound spec can never starve a later fixed minimum
// spec. The list of counts may be shorter than the list of bounds: specs
// whose minimum no longer fits stay pending for a later run.
//
// When deferTrailingZero is set, trailing zero token allocations are popped
// instead of finalized so those specs stay pending, they may still match a
// candidate run that follows a later option invocation.
func allocate(bounds []bound, n int, reserved int, deferTrailingZero bool) []int {
	suffix := make([]int, len(bounds)+1)
	suffix[len(bounds)] = reserved
	for i := len(bounds) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + bounds[i].lo
	}
	counts := []int{}
	rem := n
	for i, b := range bounds {
		if rem < b.lo {
			break
		}
		avail := rem - suffix[i+1]
		if avail < b.lo {
			avail = b.lo
		}
		take := avail
		if b.hi >= 0 && take > b.hi {
			take = b.hi
		}
		counts = append(counts, take)
		rem -= take
	}
	if deferTrailingZero {
		for len(counts) > 0 && counts[len(counts)-1] == 0 {
			counts = counts[:len(counts)-1]
		}
	}
	return counts
}
