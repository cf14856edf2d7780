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
	"strings"

	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/text"
)

// resolution - Result of resolving an option token against the registry.
type resolution struct {
	spec        *spec.Spec
	canonical   string // canonical option string, without dashes
	attached    string // argument attached with =, if any
	hasAttached bool
}

// splitOptionToken - Strips the leading dashes and splits an attached
// =argument. "--opt=value" yields ("opt", "value", true).
func splitOptionToken(raw string) (name, attached string, hasAttached bool) {
	name = strings.TrimPrefix(strings.TrimPrefix(raw, "-"), "-")
	if i := strings.Index(name, "="); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, "", false
}

// resolveOption - Maps a possibly abbreviated option token to a unique
// registered option spec.
//
// An exact match always wins. Otherwise, when abbreviations are enabled,
// the token must be a non-empty prefix of exactly one entry in the
// ambiguity universe: all option strings plus all command names when a
// subparser spec exists. A unique match that is a command name still fails
// as unknown, a dashed token never selects a command, but its presence in
// the universe means an abbreviation shared between a flag and a command is
// reported ambiguous instead of silently resolving to the flag.
func (r *registry) resolveOption(raw string) (resolution, *Error) {
	name, attached, hasAttached := splitOptionToken(raw)
	res := resolution{attached: attached, hasAttached: hasAttached}
	if s, ok := r.options[name]; ok {
		res.spec = s
		res.canonical = name
		return res, nil
	}
	if !r.allowAbbrev || name == "" {
		return res, newError(ErrUnknownOption, raw, nil, text.ErrorUnknownOption, raw)
	}
	matches := []string{}
	for k := range r.options {
		if strings.HasPrefix(k, name) {
			matches = append(matches, k)
		}
	}
	commandMatch := false
	if r.subSpec != nil {
		for k := range r.commands {
			if strings.HasPrefix(k, name) {
				matches = append(matches, k)
				commandMatch = true
			}
		}
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		display := []string{}
		for _, m := range matches {
			if _, ok := r.options[m]; ok {
				if len(m) > 1 {
					display = append(display, "--"+m)
				} else {
					display = append(display, "-"+m)
				}
			} else {
				display = append(display, m)
			}
		}
		return res, newError(ErrAmbiguousOption, raw, matches,
			text.ErrorAmbiguousOption, raw, strings.Join(display, ", "))
	}
	if len(matches) == 0 || commandMatch {
		return res, newError(ErrUnknownOption, raw, nil, text.ErrorUnknownOption, raw)
	}
	res.spec = r.options[matches[0]]
	res.canonical = matches[0]
	return res, nil
}
