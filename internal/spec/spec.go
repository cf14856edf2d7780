// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package spec - internal argument specification struct and methods.
package spec

import (
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"sort"
	"strings"

	"github.com/DavidGamba/go-argspec/text"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

// Sentinel errors used by ConvertValue so the caller can classify failures.
var (
	ErrorInvalidChoice    = errors.New("")
	ErrorConversionFailed = errors.New("")
)

// Provenance - How a destination got its value during a parse. Defaults
// never count as explicit for required checks or exclusive groups, even
// when the default equals the explicit value.
type Provenance int

// Provenance states
const (
	Unset Provenance = iota
	Default
	Explicit
)

func (p Provenance) String() string {
	switch p {
	case Default:
		return "default"
	case Explicit:
		return "explicit"
	default:
		return "unset"
	}
}

// ConvertFn - Signature for the external value conversion collaborator.
// It receives one raw token and returns the typed value to store in the
// result namespace.
type ConvertFn func(raw string) (interface{}, error)

// Kind - Closed set of arity classes.
type Kind int

// Arity classes
const (
	KindExact Kind = iota
	KindZeroOrOne
	KindZeroOrMore
	KindOneOrMore
	KindRemainder
	KindSubparser
)

// Arity - The rule governing how many tokens a spec may consume.
type Arity struct {
	Kind Kind
	N    int // Only used with KindExact.
}

// Exact - Arity that consumes exactly n tokens.
func Exact(n int) Arity { return Arity{Kind: KindExact, N: n} }

// Common arities
var (
	ZeroOrOne  = Arity{Kind: KindZeroOrOne}
	ZeroOrMore = Arity{Kind: KindZeroOrMore}
	OneOrMore  = Arity{Kind: KindOneOrMore}
	Remainder  = Arity{Kind: KindRemainder}
	Subparser  = Arity{Kind: KindSubparser}
)

// Bounds - Minimum and maximum number of tokens the arity may consume.
// A max of -1 indicates no upper bound.
func (a Arity) Bounds() (min, max int) {
	switch a.Kind {
	case KindZeroOrOne:
		return 0, 1
	case KindZeroOrMore:
		return 0, -1
	case KindOneOrMore:
		return 1, -1
	case KindRemainder:
		return 0, -1
	case KindSubparser:
		return 1, -1
	default:
		return a.N, a.N
	}
}

// Variable - Indicates the arity has no fixed upper bound.
func (a Arity) Variable() bool {
	_, max := a.Bounds()
	return max < 0
}

func (a Arity) String() string {
	switch a.Kind {
	case KindZeroOrOne:
		return "zero or one"
	case KindZeroOrMore:
		return "zero or more"
	case KindOneOrMore:
		return "one or more"
	case KindRemainder:
		return "remainder"
	case KindSubparser:
		return "subparser"
	default:
		return fmt.Sprintf("exactly %d", a.N)
	}
}

// Spec - One declared argument.
//
// A Spec with a non-empty set of option strings is optional, one with an
// empty set is positional. Specs are pure data once the registry is built:
// no parse call mutates them, which is what makes concurrent parses over a
// built registry safe.
type Spec struct {
	Name        string   // Destination key in the result namespace.
	Aliases     []string // Option strings without leading dashes. Empty for positionals.
	Arity       Arity
	Required    bool
	RequiredErr string // Custom error message for the required check.
	Default     interface{}
	HasDefault  bool
	Choices     []interface{} // Allowed converted values. Empty means any.
	MetaVars    []string      // Opaque display labels, never re-parsed by the formatter.
	Description string
	Convert     ConvertFn // nil means identity string conversion.
}

// New - Returns a new positional Spec.
func New(name string, arity Arity) *Spec {
	return &Spec{Name: name, Arity: arity}
}

// NewOption - Returns a new optional Spec with its name as the initial
// option string.
func NewOption(name string, arity Arity) *Spec {
	return &Spec{Name: name, Arity: arity, Aliases: []string{name}}
}

// IsPositional - A spec with no option strings is identified by position.
func (s *Spec) IsPositional() bool {
	return len(s.Aliases) == 0
}

// Bounds - Token bounds for this spec. See Arity.Bounds.
func (s *Spec) Bounds() (min, max int) {
	return s.Arity.Bounds()
}

// SetAlias - Adds option strings to the spec.
func (s *Spec) SetAlias(alias ...string) *Spec {
	s.Aliases = append(s.Aliases, alias...)
	return s
}

// SetDescription - Updates the help description.
func (s *Spec) SetDescription(msg string) *Spec {
	s.Description = msg
	return s
}

// SetRequired - Marks the spec as required with an optional custom message.
func (s *Spec) SetRequired(msg string) *Spec {
	s.Required = true
	s.RequiredErr = msg
	return s
}

// SetDefault - Sets the declared default value.
func (s *Spec) SetDefault(value interface{}) *Spec {
	s.Default = value
	s.HasDefault = true
	return s
}

// SetChoices - Restricts converted values to the given set.
func (s *Spec) SetChoices(values ...interface{}) *Spec {
	s.Choices = append(s.Choices, values...)
	return s
}

// SetMetaVars - Sets the display labels. More than one label declares a
// per-position tuple for multi-value arities.
func (s *Spec) SetMetaVars(labels ...string) *Spec {
	s.MetaVars = labels
	return s
}

// SetConvert - Sets the conversion collaborator.
func (s *Spec) SetConvert(fn ConvertFn) *Spec {
	s.Convert = fn
	return s
}

// Label - Display label for value position i. Labels are opaque text: they
// may contain brackets, parentheses or commas and are never inspected.
func (s *Spec) Label(i int) string {
	if len(s.MetaVars) == 0 {
		return s.Name
	}
	if i < len(s.MetaVars) {
		return s.MetaVars[i]
	}
	return s.MetaVars[len(s.MetaVars)-1]
}

// Validate - Checks that the declared arity is structurally usable.
func (s *Spec) Validate() error {
	min, max := s.Bounds()
	if s.Arity.Kind == KindExact && s.Arity.N < 0 {
		return fmt.Errorf("negative token count %d", s.Arity.N)
	}
	if s.IsPositional() {
		if min == 0 && max == 0 {
			return fmt.Errorf("a positional may not consume zero tokens")
		}
	} else {
		switch s.Arity.Kind {
		case KindRemainder, KindSubparser:
			return fmt.Errorf("%s arity is only valid on a positional", s.Arity)
		}
	}
	if len(s.MetaVars) > 1 {
		if s.Arity.Kind != KindExact || s.Arity.N != len(s.MetaVars) {
			return fmt.Errorf("%d display labels for an arity of %s", len(s.MetaVars), s.Arity)
		}
	}
	return nil
}

// ConvertValue - Runs the conversion collaborator on a raw token and checks
// the result against the declared choices. Remainder values skip the choice
// check, they are captured verbatim.
func (s *Spec) ConvertValue(raw string) (interface{}, error) {
	Logger.Printf("name: %s, raw: %s\n", s.Name, raw)
	var value interface{} = raw
	if s.Convert != nil {
		v, err := s.Convert(raw)
		if err != nil {
			return nil, fmt.Errorf(text.ErrorConversionFailed+"%w", raw, s.Name, err, ErrorConversionFailed)
		}
		value = v
	}
	if len(s.Choices) == 0 || s.Arity.Kind == KindRemainder {
		return value, nil
	}
	for _, c := range s.Choices {
		if reflect.DeepEqual(value, c) {
			return value, nil
		}
	}
	return nil, fmt.Errorf(text.ErrorInvalidChoice+"%w", value, s.Name, s.ChoicesStr(), ErrorInvalidChoice)
}

// ChoicesStr - Comma separated rendering of the declared choices.
func (s *Spec) ChoicesStr() string {
	out := []string{}
	for _, c := range s.Choices {
		out = append(out, fmt.Sprintf("%v", c))
	}
	return strings.Join(out, ", ")
}

// Sort - Sorts specs by name for display purposes.
func Sort(list []*Spec) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
}
