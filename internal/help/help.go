// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package help - renders the usage line and the help body.
//
// Display labels are opaque: every spec and group is rendered into an
// atomic segment first and wrapping only ever operates on whole segments,
// so label text containing brackets, parentheses or commas can never break
// the formatter.
package help

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/text"
)

// Padding -
var Padding = 4

// DefaultWidth - Wrap boundary used when the caller can't detect one.
var DefaultWidth = 80

// Group - Display model for a group of specs.
type Group struct {
	Title       string
	Description string
	Exclusive   bool
	Required    bool
	Specs       []*spec.Spec
}

// Name -
func Name(scriptName, description string) string {
	out := scriptName
	if description != "" {
		out += fmt.Sprintf(" - %s", description)
	}
	return fmt.Sprintf("%s:\n%s%s\n", text.HelpNameHeader, strings.Repeat(" ", Padding), out)
}

// Usage - Renders the usage line from pre-built segments, wrapping at the
// width boundary. Each segment is atomic regardless of its internal
// characters.
func Usage(scriptName string, segments []string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	prefix := text.UsagePrefix + " " + scriptName
	indent := strings.Repeat(" ", len(prefix)+1)
	if len(prefix)+1 > width/2 {
		indent = strings.Repeat(" ", Padding*2)
	}
	out := ""
	line := prefix
	for _, seg := range segments {
		if len(line)+1+len(seg) > width && line != prefix && strings.TrimSpace(line) != "" {
			out += line + "\n"
			line = indent + seg
			continue
		}
		line += " " + seg
	}
	out += line + "\n"
	return out
}

func aliasesStr(s *spec.Spec) string {
	aliases := []string{}
	for _, alias := range s.Aliases {
		if len(alias) > 1 {
			aliases = append(aliases, "--"+alias)
		} else {
			aliases = append(aliases, "-"+alias)
		}
	}
	return strings.Join(aliases, "|")
}

// labels - Per-position display labels joined with a neutral separator.
// Unbounded arities render a single label followed by "...".
func labels(s *spec.Spec) string {
	min, max := s.Bounds()
	switch {
	case max == 0:
		return ""
	case max < 0:
		return "<" + s.Label(0) + ">..."
	case max == 1:
		l := "<" + s.Label(0) + ">"
		if min == 0 && !s.IsPositional() {
			l = "[" + l + "]"
		}
		return l
	default:
		parts := []string{}
		for i := 0; i < max; i++ {
			parts = append(parts, "<"+s.Label(i)+">")
		}
		return strings.Join(parts, "|")
	}
}

// optionBare - Option rendering without the optional/required wrapping,
// used inside group segments.
func optionBare(s *spec.Spec) string {
	txt := aliasesStr(s)
	if l := labels(s); l != "" {
		txt += " " + l
	}
	return txt
}

// OptionSynopsis - One atomic usage segment for an optional spec.
func OptionSynopsis(s *spec.Spec) string {
	if s.Required {
		return optionBare(s)
	}
	return "[" + optionBare(s) + "]"
}

// PositionalSynopsis - One atomic usage segment for a positional spec.
func PositionalSynopsis(s *spec.Spec) string {
	l := "<" + s.Label(0) + ">"
	switch s.Arity.Kind {
	case spec.KindZeroOrOne:
		return "[" + l + "]"
	case spec.KindZeroOrMore, spec.KindRemainder:
		return "[" + l + "...]"
	case spec.KindOneOrMore:
		return l + "..."
	default:
		return labels(s)
	}
}

// GroupSynopsis - One atomic usage segment for a mutually exclusive group.
// Required groups use parentheses, optional groups use brackets.
func GroupSynopsis(g Group) string {
	parts := []string{}
	for _, s := range g.Specs {
		if s.IsPositional() {
			parts = append(parts, PositionalSynopsis(s))
		} else {
			parts = append(parts, optionBare(s))
		}
	}
	inner := strings.Join(parts, " | ")
	if g.Required {
		return "(" + inner + ")"
	}
	return "[" + inner + "]"
}

// CommandsSynopsis - Usage segment for the subcommand selector.
func CommandsSynopsis(names []string) string {
	sorted := append([]string{}, names...)
	sort.Strings(sorted)
	return "{" + strings.Join(sorted, ",") + "} ..."
}

// longestStringLen - Given a slice of strings it returns the length of the longest string in the slice.
func longestStringLen(s []string) int {
	i := 0
	for _, e := range s {
		if len(e) > i {
			i = len(e)
		}
	}
	return i
}

// pad - Given a string and a padding factor it will return the string padded with spaces.
func pad(s string, factor int) string {
	return fmt.Sprintf("%-"+strconv.Itoa(factor)+"s", s)
}

func specLine(s *spec.Spec, left string, factor int) string {
	txt := fmt.Sprintf("%s%s", strings.Repeat(" ", Padding), pad(left, factor+Padding))
	if s.Description != "" {
		padding := strings.Repeat(" ", Padding+factor+Padding)
		txt += strings.Replace(s.Description, "\n", "\n"+padding, -1)
	}
	if s.HasDefault && !s.Required {
		if s.Description != "" {
			txt += " "
		}
		txt += fmt.Sprintf("(default: %v)", s.Default)
	}
	return strings.TrimRight(txt, " ") + "\n"
}

func specList(list []*spec.Spec) string {
	lefts := []string{}
	for _, s := range list {
		lefts = append(lefts, leftColumn(s))
	}
	factor := longestStringLen(lefts)
	out := ""
	for i, s := range list {
		out += specLine(s, lefts[i], factor)
	}
	return out
}

func leftColumn(s *spec.Spec) string {
	if s.IsPositional() {
		return "<" + s.Label(0) + ">"
	}
	txt := aliasesStr(s)
	if l := labels(s); l != "" {
		txt += " " + l
	}
	return txt
}

// ArgumentList - Help body section for positional specs.
func ArgumentList(list []*spec.Spec) string {
	if len(list) == 0 {
		return ""
	}
	return fmt.Sprintf("%s:\n%s", text.HelpArgumentsHeader, specList(list))
}

// OptionList - Help body sections for ungrouped optional specs, required
// options first.
func OptionList(list []*spec.Spec) string {
	normal := []*spec.Spec{}
	required := []*spec.Spec{}
	for _, s := range list {
		if s.Required {
			required = append(required, s)
		} else {
			normal = append(normal, s)
		}
	}
	spec.Sort(normal)
	spec.Sort(required)
	out := ""
	if len(required) > 0 {
		out += fmt.Sprintf("%s:\n%s", text.HelpRequiredOptionsHeader, specList(required))
	}
	if len(normal) > 0 {
		if out != "" {
			out += "\n"
		}
		out += fmt.Sprintf("%s:\n%s", text.HelpOptionsHeader, specList(normal))
	}
	return out
}

// GroupList - Help body section for a titled group. Mutual exclusivity does
// not alter the body rendering, the title is a display concern only.
func GroupList(g Group) string {
	if len(g.Specs) == 0 {
		return ""
	}
	title := g.Title
	if title == "" {
		title = text.HelpOptionsHeader
	}
	out := fmt.Sprintf("%s:\n", title)
	if g.Description != "" {
		out += fmt.Sprintf("%s%s\n", strings.Repeat(" ", Padding), g.Description)
	}
	out += specList(g.Specs)
	return out
}

// CommandList -
// commandMap => name: description
func CommandList(commandMap map[string]string) string {
	if len(commandMap) == 0 {
		return ""
	}
	names := []string{}
	for name := range commandMap {
		names = append(names, name)
	}
	sort.Strings(names)
	factor := longestStringLen(names)
	out := ""
	for _, command := range names {
		line := fmt.Sprintf("%s%s%s%s", strings.Repeat(" ", Padding), pad(command, factor), strings.Repeat(" ", Padding), commandMap[command])
		out += strings.TrimRight(line, " ") + "\n"
	}
	return fmt.Sprintf("%s:\n%s", text.HelpCommandsHeader, out)
}
