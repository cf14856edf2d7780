// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import (
	"sort"

	"github.com/DavidGamba/go-argspec/internal/spec"
)

// Namespace - Result of a successful parse: every declared destination maps
// to a value, explicit or default. When a command was dispatched, the
// command's destinations are merged in and override same named parent
// destinations.
type Namespace struct {
	values     map[string]interface{}
	provenance map[string]spec.Provenance
}

// Get - Returns the value stored under the destination name. Flags hold a
// bool, single value arities hold the converted value, multi value arities
// hold a []interface{}. Unknown destinations return nil.
func (n *Namespace) Get(dest string) interface{} {
	return n.values[dest]
}

// Called - Tells if the destination received an explicit value from the
// command line, as opposed to its declared default.
func (n *Namespace) Called(dest string) bool {
	return n.provenance[dest] == spec.Explicit
}

// Strings - Returns the value under the destination name as a []string.
// Useful for multi value destinations with the default string conversion.
func (n *Namespace) Strings(dest string) []string {
	out := []string{}
	switch v := n.values[dest].(type) {
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		out = append(out, v)
	}
	return out
}

// Destinations - Sorted list of every destination name in the namespace.
func (n *Namespace) Destinations() []string {
	out := []string{}
	for k := range n.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
