// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package token - classifies raw CLI tokens into the compact pattern
// alphabet consumed by the matcher.
package token

import (
	"regexp"
	"strings"
)

// Kind - Classification of a raw token.
type Kind int

// Token classifications
const (
	Candidate Kind = iota // A candidate value for a positional or an option argument.
	Option                // Looks like an option invocation.
	Separator             // The first literal "--". Consumed, never part of any value.
)

// Token - One classified raw token.
type Token struct {
	Raw  string
	Kind Kind
}

// Rules - Registry derived classification rules.
type Rules struct {
	// NegativeNumberOptions indicates at least one registered option string
	// itself looks like a negative number. When set, negative number shaped
	// tokens classify as options instead of candidates.
	NegativeNumberOptions bool
}

// -1 -12 -1.5 -.5
var negativeNumberRegex = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// LooksNegativeNumber - Tells if a string is shaped like a negative number.
// Used both on incoming tokens and on registered option strings.
func LooksNegativeNumber(s string) bool {
	return negativeNumberRegex.MatchString(s)
}

// Classify - Classifies each raw token.
//
// Only the first "--" is a Separator. Every token after it is a Candidate
// regardless of shape, including any further literal "--" tokens, which are
// preserved verbatim.
func Classify(args []string, rules Rules) []Token {
	out := make([]Token, 0, len(args))
	seenSeparator := false
	for _, arg := range args {
		if seenSeparator {
			out = append(out, Token{Raw: arg, Kind: Candidate})
			continue
		}
		if arg == "--" {
			seenSeparator = true
			out = append(out, Token{Raw: arg, Kind: Separator})
			continue
		}
		out = append(out, Token{Raw: arg, Kind: classify(arg, rules)})
	}
	return out
}

func classify(arg string, rules Rules) Kind {
	if arg == "" || !strings.HasPrefix(arg, "-") {
		return Candidate
	}
	// Lone dash is a common stdin placeholder.
	if arg == "-" {
		return Candidate
	}
	if LooksNegativeNumber(arg) && !rules.NegativeNumberOptions {
		return Candidate
	}
	// Option strings never contain spaces.
	if strings.Contains(arg, " ") {
		return Candidate
	}
	return Option
}
