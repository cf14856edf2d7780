// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package argspec - declarative command line argument matcher.

Arguments are declared as specs: a destination name, an arity describing how
many tokens the spec consumes, and optional collaborators like a conversion
function, a choice set or a default value. Parse matches a token list
against the declared specs and returns a namespace mapping every destination
to a value.

# Usage

The following is a basic example:

	p := argspec.New("myscript", "does script things")
	p.Flag("verbose", p.Alias("v"), p.Description("enable debug output"))
	p.Option("count", argspec.Exact(1), p.Alias("c"), p.Default("1"))
	p.Positional("files", argspec.OneOrMore)

	ns, err := p.Parse(os.Args[1:])
	if err != nil {
		p.PrintError(err)
		os.Exit(2)
	}

	if ns.Get("verbose").(bool) {
		// ...
	}
	for _, f := range ns.Strings("files") {
		// ...
	}

# Features

  - Variable arities: Exact(n), ZeroOrOne, ZeroOrMore, OneOrMore and
    Remainder. Interleaved options and positionals share candidate runs so
    that every positional minimum can still be met.

  - Unambiguous prefix abbreviation of option strings, with command names
    part of the ambiguity universe.

  - Explicit value provenance: required checks and mutually exclusive
    groups only count values that came from the command line, never
    defaults.

  - Subcommands declared with Subparsers and NewCommand; the selected
    command consumes the rest of the line and its results merge into the
    returned namespace.

  - Automated help and usage output where display labels are opaque text.

# Errors

Parse failures are *Error values carrying a Kind and matching the exported
sentinels with errors.Is:

	if errors.Is(err, argspec.ErrorUnknownOption) {
		// ...
	}

Definition mistakes, like declaring the same destination twice, are
programmer errors and panic at declaration time.
*/
package argspec
