// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package text - user facing strings.
package text

// Error messages
const (
	ErrorUnknownOption = "unknown option '%s'"

	ErrorAmbiguousOption = "ambiguous option '%s' could match %s"

	ErrorMissingRequiredOption = "missing required option '%s'"

	ErrorMissingRequiredArgument = "missing required argument '%s'"

	ErrorMissingRequiredGroup = "one of the arguments %s is required"

	ErrorExclusiveConflict = "argument '%s' not allowed with argument '%s'"

	ErrorExpectedOneArgument = "option '%s' expected one argument"

	ErrorExpectedAtLeastOneArgument = "option '%s' expected at least one argument"

	ErrorExpectedNArguments = "option '%s' expected %d arguments"

	ErrorIgnoredAttachedArgument = "option '%s' does not take an argument: '%s'"

	ErrorInvalidChoice = "invalid choice '%v' for '%s' (choose from %s)"

	ErrorConversionFailed = "invalid value '%s' for '%s': %s"

	ErrorUnrecognizedArguments = "unrecognized arguments: %s"

	ErrorInvalidArity = "invalid arity for '%s': %s"

	ErrorUnknownCommand = "unknown command '%s' (commands: %s)"

	ErrorMissingCommand = "missing required command (commands: %s)"
)

// Help headers
const (
	HelpNameHeader = "NAME"

	HelpArgumentsHeader = "ARGUMENTS"

	HelpRequiredOptionsHeader = "REQUIRED OPTIONS"

	HelpOptionsHeader = "OPTIONS"

	HelpCommandsHeader = "COMMANDS"

	UsagePrefix = "Usage:"

	ErrorPrefix = "error:"
)
