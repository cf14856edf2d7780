// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import (
	"strings"

	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/text"
)

// Group - A set of member specs. A display group carries a title and
// description and only affects help rendering. A mutually exclusive group
// additionally rejects parses where two or more members received explicit
// values; a required exclusive group rejects parses where none did.
//
// Grouping for display and mutual exclusivity for validation are
// orthogonal: an exclusive group may be nested inside a display group
// without altering its validation semantics.
type Group struct {
	title       string
	description string
	exclusive   bool
	required    bool
	members     []*spec.Spec
	parser      *Parser
	section     *Group // display group this group is nested under
}

// Group - Declares a display only group. Its members render as a titled
// section of the help body.
func (p *Parser) Group(title string, description string) *Group {
	g := &Group{title: title, description: description, parser: p}
	p.registry.groups = append(p.registry.groups, g)
	return g
}

// ExclusiveGroup - Declares a mutually exclusive group. At most one member
// may receive an explicit value in a single parse; when required, exactly
// one must. Members left at their declared defaults never conflict,
// regardless of what the default values are.
func (p *Parser) ExclusiveGroup(required bool) *Group {
	g := &Group{exclusive: true, required: required, parser: p}
	p.registry.groups = append(p.registry.groups, g)
	return g
}

// ExclusiveGroup - Nests a mutually exclusive group inside a display group.
// Nesting is a formatting concern only.
func (g *Group) ExclusiveGroup(required bool) *Group {
	child := g.parser.ExclusiveGroup(required)
	child.section = g
	return child
}

// Option - Declares an optional spec and registers it as a member.
func (g *Group) Option(dest string, arity Arity, fns ...ModifyFn) *Group {
	g.parser.Option(dest, arity, fns...)
	g.add(g.parser.registry.dests[dest])
	return g
}

// Flag - Declares a no-argument option and registers it as a member.
func (g *Group) Flag(dest string, fns ...ModifyFn) *Group {
	return g.Option(dest, Exact(0), fns...)
}

// Positional - Declares a positional spec and registers it as a member.
func (g *Group) Positional(dest string, arity Arity, fns ...ModifyFn) *Group {
	g.parser.Positional(dest, arity, fns...)
	g.add(g.parser.registry.dests[dest])
	return g
}

// Add - Registers an already declared spec as a member.
func (g *Group) Add(dest string) *Group {
	s, ok := g.parser.registry.dests[dest]
	if !ok {
		panic("unknown destination '" + dest + "'")
	}
	g.add(s)
	return g
}

func (g *Group) add(s *spec.Spec) {
	if g.exclusive {
		for _, other := range g.parser.registry.groups {
			if !other.exclusive || other == g {
				continue
			}
			for _, m := range other.members {
				if m == s {
					panic("spec '" + s.Name + "' already belongs to a mutually exclusive group")
				}
			}
		}
	}
	g.members = append(g.members, s)
}

// displayName - User facing name for error messages: the primary option
// string for optionals, the destination name for positionals.
func displayName(s *spec.Spec) string {
	if s.IsPositional() {
		return s.Name
	}
	if len(s.Aliases[0]) > 1 {
		return "--" + s.Aliases[0]
	}
	return "-" + s.Aliases[0]
}

// checkGroups - Post match validation. Only explicit provenance counts:
// two members holding equal values do not conflict unless both were
// explicitly supplied.
func checkGroups(groups []*Group, st *parseState) error {
	for _, g := range groups {
		if !g.exclusive {
			continue
		}
		explicit := []string{}
		for _, s := range g.members {
			if b, ok := st.bind[s]; ok && b.prov == spec.Explicit {
				explicit = append(explicit, displayName(s))
			}
		}
		if len(explicit) >= 2 {
			return newError(ErrExclusiveConflict, "", explicit,
				text.ErrorExclusiveConflict, explicit[len(explicit)-1], strings.Join(explicit[:len(explicit)-1], ", "))
		}
		if g.required && len(explicit) == 0 {
			names := []string{}
			for _, s := range g.members {
				names = append(names, displayName(s))
			}
			return newError(ErrMissingRequiredGroup, "", names,
				text.ErrorMissingRequiredGroup, strings.Join(names, " "))
		}
	}
	return nil
}
