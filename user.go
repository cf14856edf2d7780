// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/internal/token"
	"github.com/DavidGamba/go-argspec/text"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

// Writer - io.Writer used for help and error output. Defaults to os.Stderr.
var Writer io.Writer = os.Stderr

// Arity - The rule governing how many tokens a spec may or must consume.
type Arity = spec.Arity

// ConvertFn - Signature for the external value conversion collaborator.
type ConvertFn = spec.ConvertFn

// Exact - Arity that consumes exactly n tokens. Exact(0) declares a flag
// and is only valid on optional specs.
func Exact(n int) Arity { return spec.Exact(n) }

// Arity classes. Remainder consumes every remaining token verbatim,
// including option shaped ones.
var (
	ZeroOrOne  = spec.ZeroOrOne
	ZeroOrMore = spec.ZeroOrMore
	OneOrMore  = spec.OneOrMore
	Remainder  = spec.Remainder
)

// Parser - main object. A Parser is built incrementally with the
// declaration methods and is logically immutable once Parse is called:
// concurrent Parse calls over one built Parser are safe as long as no
// declaration method runs concurrently with them.
type Parser struct {
	registry *registry
}

// registry - Ordered argument specs plus groups and nested command
// registries. Built by the Parser declaration methods, read by parsing.
type registry struct {
	name        string
	description string

	specs   []*spec.Spec          // in declaration order, positionals and options
	dests   map[string]*spec.Spec // destination name -> spec
	options map[string]*spec.Spec // option string or alias -> spec, flattened

	groups []*Group

	subSpec      *spec.Spec
	commands     map[string]*Parser
	commandOrder []string

	parent *registry

	allowAbbrev bool
}

// New returns an empty Parser with the given program name and description.
// This is the starting point when using go-argspec. For example:
//
//	p := argspec.New("myscript", "does script things")
func New(name string, description string) *Parser {
	return &Parser{registry: &registry{
		name:        name,
		description: description,
		dests:       map[string]*spec.Spec{},
		options:     map[string]*spec.Spec{},
		commands:    map[string]*Parser{},
		allowAbbrev: true,
	}}
}

// SetAllowAbbreviations - Controls whether option tokens may abbreviate
// registered option strings to a unique prefix. Enabled by default; when
// disabled only exact matches are accepted.
func (p *Parser) SetAllowAbbreviations(allow bool) *Parser {
	p.registry.allowAbbrev = allow
	return p
}

// Positional - Declares a positional spec. The destination name is the key
// under which the matched value is stored in the result namespace.
func (p *Parser) Positional(dest string, arity Arity, fns ...ModifyFn) *Parser {
	s := spec.New(dest, arity)
	p.registry.addSpec(s)
	for _, fn := range fns {
		fn(p, s)
	}
	return p
}

// Option - Declares an optional spec invoked via option strings. The
// destination name doubles as the primary option string: a one character
// name is invoked as -x, a longer one as --name. Extra option strings are
// added with Alias.
func (p *Parser) Option(dest string, arity Arity, fns ...ModifyFn) *Parser {
	s := spec.NewOption(dest, arity)
	p.registry.addSpec(s)
	for _, fn := range fns {
		fn(p, s)
	}
	return p
}

// Flag - Declares an option that consumes no tokens. Its value is false
// until invoked, or the opposite of its declared default.
func (p *Parser) Flag(dest string, fns ...ModifyFn) *Parser {
	return p.Option(dest, Exact(0), fns...)
}

// Commands - Handle used to add named nested registries to a subparser
// spec.
type Commands struct {
	parser *Parser
}

// Subparsers - Declares the designated positional spec that selects a
// command. The selector token picks one of the named nested registries,
// which then consumes every remaining token. Mark it required with the
// Required modifier to reject command lines without a command.
func (p *Parser) Subparsers(dest string, fns ...ModifyFn) *Commands {
	if p.registry.subSpec != nil {
		panic("only one subparser spec can be declared")
	}
	s := spec.New(dest, spec.Subparser)
	p.registry.addSpec(s)
	p.registry.subSpec = s
	for _, fn := range fns {
		fn(p, s)
	}
	return &Commands{parser: p}
}

// NewCommand - Returns a new Parser representing a named command.
func (c *Commands) NewCommand(name string, description string) *Parser {
	r := c.parser.registry
	if name == "" {
		panic("command name can't be empty")
	}
	if _, ok := r.commands[name]; ok {
		panic(fmt.Sprintf("command '%s' is already defined", name))
	}
	if s, ok := r.options[name]; ok {
		panic(fmt.Sprintf("command '%s' collides with option '%s'", name, s.Name))
	}
	cmd := New(name, description)
	cmd.registry.parent = r
	r.commands[name] = cmd
	r.commandOrder = append(r.commandOrder, name)
	return cmd
}

// addSpec - Registers a spec and runs definition time validations.
// Definition errors are programmer errors and panic.
func (r *registry) addSpec(s *spec.Spec) {
	if s.Name == "" {
		panic("spec destination name can't be empty")
	}
	if _, ok := r.dests[s.Name]; ok {
		panic(fmt.Sprintf("destination '%s' is already defined", s.Name))
	}
	if s.IsPositional() && r.subSpec != nil {
		panic(fmt.Sprintf("positional '%s' declared after the subparser spec can never match", s.Name))
	}
	for _, alias := range s.Aliases {
		r.addOptionString(alias, s)
	}
	r.dests[s.Name] = s
	r.specs = append(r.specs, s)
}

// addOptionString - Registers one option string. Option strings are unique
// across the registry, including against command names, so that
// abbreviation resolution has a single unambiguous universe.
func (r *registry) addOptionString(name string, s *spec.Spec) {
	if name == "" {
		panic("option string can't be empty")
	}
	if v, ok := r.options[name]; ok {
		panic(fmt.Sprintf("option string '%s' is already defined in option '%s'", name, v.Name))
	}
	if _, ok := r.commands[name]; ok {
		panic(fmt.Sprintf("option string '%s' collides with a command name", name))
	}
	r.options[name] = s
}

// validate - Structural checks deferred to parse time so they surface as
// errors rather than panics.
func (r *registry) validate() error {
	for _, s := range r.specs {
		if err := s.Validate(); err != nil {
			return newError(ErrInvalidArity, "", []string{s.Name}, text.ErrorInvalidArity, s.Name, err)
		}
	}
	if r.subSpec != nil && len(r.commands) == 0 {
		return newError(ErrInvalidArity, "", []string{r.subSpec.Name}, text.ErrorInvalidArity, r.subSpec.Name, "no commands declared")
	}
	return nil
}

// hasNegativeNumberOptions - Tells if any registered option string is
// itself shaped like a negative number, in which case negative number
// shaped tokens classify as options.
func (r *registry) hasNegativeNumberOptions() bool {
	for name := range r.options {
		if token.LooksNegativeNumber("-" + name) {
			return true
		}
	}
	return false
}

// scriptName - Program name including the parent command path.
func (r *registry) scriptName() string {
	if r.parent != nil {
		return r.parent.scriptName() + " " + r.name
	}
	return r.name
}
