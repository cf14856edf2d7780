// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlag(t *testing.T) {
	buf := setupLogging()

	t.Run("default false", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose", p.Alias("v"))
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Get("verbose") != false {
			t.Errorf("wrong value: %v", ns.Get("verbose"))
		}
		if ns.Called("verbose") {
			t.Errorf("flag reported as called")
		}
	})

	t.Run("invoked", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose", p.Alias("v"))
		ns, err := p.Parse([]string{"-v"})
		checkError(t, err, nil)
		if ns.Get("verbose") != true {
			t.Errorf("wrong value: %v", ns.Get("verbose"))
		}
		if !ns.Called("verbose") {
			t.Errorf("flag not reported as called")
		}
	})

	t.Run("invoked flips declared default", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("cache", p.Default(true))
		ns, err := p.Parse([]string{"--cache"})
		checkError(t, err, nil)
		if ns.Get("cache") != false {
			t.Errorf("wrong value: %v", ns.Get("cache"))
		}
	})

	t.Run("attached argument rejected", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		_, err := p.Parse([]string{"--verbose=yes"})
		checkError(t, err, ErrorInvalidArity)
	})

	t.Cleanup(func() { t.Log(buf.String()) })
}

func TestOption(t *testing.T) {
	buf := setupLogging()

	t.Run("separate argument", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Alias("c"))
		ns, err := p.Parse([]string{"--count", "3"})
		checkError(t, err, nil)
		if ns.Get("count") != "3" {
			t.Errorf("wrong value: %v", ns.Get("count"))
		}
	})

	t.Run("attached argument", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1))
		ns, err := p.Parse([]string{"--count=3"})
		checkError(t, err, nil)
		if ns.Get("count") != "3" {
			t.Errorf("wrong value: %v", ns.Get("count"))
		}
	})

	t.Run("short option", func(t *testing.T) {
		p := New("prog", "")
		p.Option("c", Exact(1))
		ns, err := p.Parse([]string{"-c", "3"})
		checkError(t, err, nil)
		if ns.Get("c") != "3" {
			t.Errorf("wrong value: %v", ns.Get("c"))
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1))
		_, err := p.Parse([]string{"--count"})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "option '--count' expected one argument" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("fixed tuple", func(t *testing.T) {
		p := New("prog", "")
		p.Option("pair", Exact(2))
		ns, err := p.Parse([]string{"--pair", "a", "b"})
		checkError(t, err, nil)
		expected := []interface{}{"a", "b"}
		if diff := cmp.Diff(expected, ns.Get("pair")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("fixed tuple short", func(t *testing.T) {
		p := New("prog", "")
		p.Option("pair", Exact(2))
		_, err := p.Parse([]string{"--pair", "a"})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "option '--pair' expected 2 arguments" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("repeated invocation keeps last", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1))
		ns, err := p.Parse([]string{"--count", "1", "--count", "2"})
		checkError(t, err, nil)
		if ns.Get("count") != "2" {
			t.Errorf("wrong value: %v", ns.Get("count"))
		}
	})

	t.Run("default applies when not invoked", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Default("7"))
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Get("count") != "7" {
			t.Errorf("wrong value: %v", ns.Get("count"))
		}
		if ns.Called("count") {
			t.Errorf("default reported as called")
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		_, err := p.Parse([]string{"--nope"})
		checkError(t, err, ErrorUnknownOption)
	})

	t.Cleanup(func() { t.Log(buf.String()) })
}

func TestVariableArityOption(t *testing.T) {
	buf := setupLogging()

	t.Run("greedy within run", func(t *testing.T) {
		p := New("prog", "")
		p.Option("files", OneOrMore)
		ns, err := p.Parse([]string{"--files", "a", "b", "c"})
		checkError(t, err, nil)
		expected := []string{"a", "b", "c"}
		if diff := cmp.Diff(expected, ns.Strings("files")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("leaves positional minimums in the same run", func(t *testing.T) {
		p := New("prog", "")
		p.Option("files", OneOrMore)
		p.Positional("dest", Exact(1))
		ns, err := p.Parse([]string{"--files", "a", "b", "c"})
		checkError(t, err, nil)
		expected := []string{"a", "b"}
		if diff := cmp.Diff(expected, ns.Strings("files")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
		if ns.Get("dest") != "c" {
			t.Errorf("wrong value: %v", ns.Get("dest"))
		}
	})

	t.Run("positional minimum met by a later run", func(t *testing.T) {
		p := New("prog", "")
		p.Option("files", OneOrMore)
		p.Flag("verbose")
		p.Positional("dest", Exact(1))
		ns, err := p.Parse([]string{"--files", "a", "b", "--verbose", "c"})
		checkError(t, err, nil)
		expected := []string{"a", "b"}
		if diff := cmp.Diff(expected, ns.Strings("files")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
		if ns.Get("dest") != "c" {
			t.Errorf("wrong value: %v", ns.Get("dest"))
		}
	})

	t.Run("at least one", func(t *testing.T) {
		p := New("prog", "")
		p.Option("files", OneOrMore)
		_, err := p.Parse([]string{"--files"})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "option '--files' expected at least one argument" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Cleanup(func() { t.Log(buf.String()) })
}

func TestPositionals(t *testing.T) {
	buf := setupLogging()

	t.Run("exact", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("src", Exact(1))
		p.Positional("dst", Exact(1))
		ns, err := p.Parse([]string{"a", "b"})
		checkError(t, err, nil)
		if ns.Get("src") != "a" || ns.Get("dst") != "b" {
			t.Errorf("wrong values: %v %v", ns.Get("src"), ns.Get("dst"))
		}
	})

	t.Run("missing required positional", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("src", Exact(1))
		_, err := p.Parse([]string{})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "missing required argument 'src'" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("variable shares run with later minimums", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("srcs", OneOrMore)
		p.Positional("dst", Exact(1))
		ns, err := p.Parse([]string{"a", "b", "c"})
		checkError(t, err, nil)
		expected := []string{"a", "b"}
		if diff := cmp.Diff(expected, ns.Strings("srcs")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
		if ns.Get("dst") != "c" {
			t.Errorf("wrong value: %v", ns.Get("dst"))
		}
	})

	t.Run("variable sharing unaffected by surrounding options", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		p.Flag("debug")
		p.Positional("srcs", OneOrMore)
		p.Positional("dst", Exact(1))
		ns, err := p.Parse([]string{"--verbose", "a", "b", "c", "--debug"})
		checkError(t, err, nil)
		expected := []string{"a", "b"}
		if diff := cmp.Diff(expected, ns.Strings("srcs")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
		if ns.Get("dst") != "c" {
			t.Errorf("wrong value: %v", ns.Get("dst"))
		}
	})

	t.Run("optional squeezed out by later exact", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("a", Exact(2))
		p.Positional("b", ZeroOrOne, p.Default("none"))
		p.Positional("c", Exact(2))
		ns, err := p.Parse([]string{"1", "2", "3", "4"})
		checkError(t, err, nil)
		if ns.Get("b") != "none" {
			t.Errorf("wrong value: %v", ns.Get("b"))
		}
		if diff := cmp.Diff([]string{"3", "4"}, ns.Strings("c")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("trailing optional deferred past option", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		p.Positional("x", Exact(1))
		p.Positional("y", ZeroOrOne)
		ns, err := p.Parse([]string{"a", "--verbose", "b"})
		checkError(t, err, nil)
		if ns.Get("x") != "a" {
			t.Errorf("wrong value: %v", ns.Get("x"))
		}
		if ns.Get("y") != "b" {
			t.Errorf("wrong value: %v", ns.Get("y"))
		}
	})

	t.Run("unmatched candidate is unrecognized", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		p.Positional("srcs", ZeroOrMore)
		_, err := p.Parse([]string{"a", "--verbose", "b"})
		checkError(t, err, ErrorUnrecognizedArgs)
		if err.Error() != "unrecognized arguments: b" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("zero tokens settles on default provenance", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("srcs", ZeroOrMore)
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Called("srcs") {
			t.Errorf("default reported as called")
		}
	})

	t.Cleanup(func() { t.Log(buf.String()) })
}

func TestSeparator(t *testing.T) {
	setupLogging()

	t.Run("first separator hides option shaped tokens", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		p.Positional("srcs", ZeroOrMore)
		ns, err := p.Parse([]string{"--", "--verbose", "a"})
		checkError(t, err, nil)
		if ns.Called("verbose") {
			t.Errorf("flag parsed after separator")
		}
		expected := []string{"--verbose", "a"}
		if diff := cmp.Diff(expected, ns.Strings("srcs")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("only the first separator is consumed", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("srcs", ZeroOrMore)
		ns, err := p.Parse([]string{"a", "--", "b", "--", "c"})
		checkError(t, err, nil)
		expected := []string{"a", "b", "--", "c"}
		if diff := cmp.Diff(expected, ns.Strings("srcs")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})
}

func TestNegativeNumbers(t *testing.T) {
	setupLogging()

	t.Run("candidate when no dashed number options exist", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("nums", OneOrMore)
		ns, err := p.Parse([]string{"-1", "-2.5"})
		checkError(t, err, nil)
		expected := []string{"-1", "-2.5"}
		if diff := cmp.Diff(expected, ns.Strings("nums")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("option when a dashed number option exists", func(t *testing.T) {
		p := New("prog", "")
		p.Option("1", Exact(1))
		p.Positional("nums", ZeroOrMore)
		_, err := p.Parse([]string{"-2"})
		checkError(t, err, ErrorUnknownOption)
	})
}

func TestRemainder(t *testing.T) {
	setupLogging()

	t.Run("captures option shaped tokens verbatim", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("command", Exact(1))
		p.Positional("rest", Remainder)
		ns, err := p.Parse([]string{"run", "--fast", "x", "y"})
		checkError(t, err, nil)
		if ns.Get("command") != "run" {
			t.Errorf("wrong value: %v", ns.Get("command"))
		}
		expected := []string{"--fast", "x", "y"}
		if diff := cmp.Diff(expected, ns.Strings("rest")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("options before the remainder still parse", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("verbose")
		p.Positional("rest", Remainder)
		ns, err := p.Parse([]string{"--verbose", "a", "--flag"})
		checkError(t, err, nil)
		if !ns.Called("verbose") {
			t.Errorf("flag not parsed before the remainder began")
		}
		expected := []string{"a", "--flag"}
		if diff := cmp.Diff(expected, ns.Strings("rest")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("empty remainder settles on default", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("rest", Remainder)
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Called("rest") {
			t.Errorf("empty remainder reported as called")
		}
	})

	t.Run("remainder skips the choice check", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("rest", Remainder, p.Choices("a", "b"))
		ns, err := p.Parse([]string{"z"})
		checkError(t, err, nil)
		if diff := cmp.Diff([]string{"z"}, ns.Strings("rest")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})
}

func TestChoicesAndConvert(t *testing.T) {
	setupLogging()

	t.Run("valid choice", func(t *testing.T) {
		p := New("prog", "")
		p.Option("color", Exact(1), p.Choices("red", "green"))
		ns, err := p.Parse([]string{"--color", "green"})
		checkError(t, err, nil)
		if ns.Get("color") != "green" {
			t.Errorf("wrong value: %v", ns.Get("color"))
		}
	})

	t.Run("invalid choice", func(t *testing.T) {
		p := New("prog", "")
		p.Option("color", Exact(1), p.Choices("red", "green"))
		_, err := p.Parse([]string{"--color", "blue"})
		checkError(t, err, ErrorInvalidChoice)
		if err.Error() != "invalid choice 'blue' for 'color' (choose from red, green)" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("conversion applies before the choice check", func(t *testing.T) {
		p := New("prog", "")
		p.Option("level", Exact(1),
			p.Convert(func(raw string) (interface{}, error) { return strconv.Atoi(raw) }),
			p.Choices(1, 2, 3))
		ns, err := p.Parse([]string{"--level", "2"})
		checkError(t, err, nil)
		if ns.Get("level") != 2 {
			t.Errorf("wrong value: %v", ns.Get("level"))
		}
	})

	t.Run("conversion failure", func(t *testing.T) {
		p := New("prog", "")
		p.Option("level", Exact(1),
			p.Convert(func(raw string) (interface{}, error) { return strconv.Atoi(raw) }))
		_, err := p.Parse([]string{"--level", "x"})
		checkError(t, err, ErrorConversionFailed)
	})
}

func TestRequired(t *testing.T) {
	setupLogging()

	t.Run("missing required option", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Required())
		_, err := p.Parse([]string{})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "missing required option '--count'" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("custom required message", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Required("count is not optional here"))
		_, err := p.Parse([]string{})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "count is not optional here" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("default never satisfies required", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Required(), p.Default("1"))
		_, err := p.Parse([]string{})
		checkError(t, err, ErrorMissingRequired)
	})

	t.Run("explicit value satisfies required", func(t *testing.T) {
		p := New("prog", "")
		p.Option("count", Exact(1), p.Required())
		ns, err := p.Parse([]string{"--count", "1"})
		checkError(t, err, nil)
		if !ns.Called("count") {
			t.Errorf("explicit value not reported as called")
		}
	})
}

func TestSubparsers(t *testing.T) {
	setupLogging()

	setup := func() *Parser {
		p := New("prog", "")
		p.Flag("verbose")
		cmds := p.Subparsers("command", p.Required())
		run := cmds.NewCommand("run", "run the thing")
		run.Option("jobs", Exact(1), run.Alias("j"), run.Default("1"))
		run.Positional("target", Exact(1))
		cmds.NewCommand("clean", "remove artifacts")
		return p
	}

	t.Run("dispatch merges the child namespace", func(t *testing.T) {
		p := setup()
		ns, err := p.Parse([]string{"--verbose", "run", "-j", "4", "all"})
		checkError(t, err, nil)
		if ns.Get("command") != "run" {
			t.Errorf("wrong value: %v", ns.Get("command"))
		}
		if !ns.Called("verbose") {
			t.Errorf("parent flag not parsed")
		}
		if ns.Get("jobs") != "4" || ns.Get("target") != "all" {
			t.Errorf("wrong values: %v %v", ns.Get("jobs"), ns.Get("target"))
		}
	})

	t.Run("tokens after the selector belong to the command", func(t *testing.T) {
		p := setup()
		_, err := p.Parse([]string{"run", "all", "--verbose"})
		checkError(t, err, ErrorUnknownOption)
	})

	t.Run("unknown command", func(t *testing.T) {
		p := setup()
		_, err := p.Parse([]string{"nope"})
		checkError(t, err, ErrorInvalidChoice)
		if err.Error() != "unknown command 'nope' (commands: run, clean)" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("missing required command", func(t *testing.T) {
		p := setup()
		_, err := p.Parse([]string{"--verbose"})
		checkError(t, err, ErrorMissingRequired)
		if err.Error() != "missing required command (commands: run, clean)" {
			t.Errorf("wrong message: %s", err)
		}
	})

	t.Run("optional selector may stay unset", func(t *testing.T) {
		p := New("prog", "")
		cmds := p.Subparsers("command")
		cmds.NewCommand("run", "")
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Called("command") {
			t.Errorf("unset selector reported as called")
		}
	})

	t.Run("option directly after the selector", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("profile", ZeroOrOne, p.Default("dev"))
		cmds := p.Subparsers("command", p.Required())
		run := cmds.NewCommand("run", "")
		run.Option("jobs", Exact(1), run.Alias("j"))
		ns, err := p.Parse([]string{"run", "--jobs", "4"})
		checkError(t, err, nil)
		if ns.Get("profile") != "dev" {
			t.Errorf("wrong value: %v", ns.Get("profile"))
		}
		if ns.Get("command") != "run" {
			t.Errorf("wrong value: %v", ns.Get("command"))
		}
		if ns.Get("jobs") != "4" {
			t.Errorf("wrong value: %v", ns.Get("jobs"))
		}
	})

	t.Run("separator state carries into the command", func(t *testing.T) {
		p := New("prog", "")
		cmds := p.Subparsers("command")
		run := cmds.NewCommand("run", "")
		run.Flag("verbose")
		run.Positional("args", ZeroOrMore)
		ns, err := p.Parse([]string{"run", "--", "--verbose"})
		checkError(t, err, nil)
		if ns.Called("verbose") {
			t.Errorf("flag parsed after separator")
		}
		expected := []string{"--verbose"}
		if diff := cmp.Diff(expected, ns.Strings("args")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("later separators reach the command verbatim", func(t *testing.T) {
		p := New("prog", "")
		cmds := p.Subparsers("command")
		run := cmds.NewCommand("run", "")
		run.Positional("args", ZeroOrMore)
		ns, err := p.Parse([]string{"--", "run", "--", "x"})
		checkError(t, err, nil)
		if ns.Get("command") != "run" {
			t.Errorf("wrong value: %v", ns.Get("command"))
		}
		expected := []string{"--", "x"}
		if diff := cmp.Diff(expected, ns.Strings("args")); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("preceding optional positional yields the selector", func(t *testing.T) {
		p := New("prog", "")
		p.Positional("profile", ZeroOrOne, p.Default("dev"))
		cmds := p.Subparsers("command", p.Required())
		cmds.NewCommand("run", "")
		ns, err := p.Parse([]string{"run"})
		checkError(t, err, nil)
		if ns.Get("profile") != "dev" {
			t.Errorf("wrong value: %v", ns.Get("profile"))
		}
		if ns.Get("command") != "run" {
			t.Errorf("wrong value: %v", ns.Get("command"))
		}
	})
}

func TestNamespace(t *testing.T) {
	setupLogging()

	t.Run("destinations are sorted", func(t *testing.T) {
		p := New("prog", "")
		p.Flag("b")
		p.Flag("a")
		p.Positional("c", ZeroOrMore)
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		expected := []string{"a", "b", "c"}
		if diff := cmp.Diff(expected, ns.Destinations()); diff != "" {
			t.Errorf("wrong value (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown destination returns nil", func(t *testing.T) {
		p := New("prog", "")
		ns, err := p.Parse([]string{})
		checkError(t, err, nil)
		if ns.Get("nope") != nil {
			t.Errorf("wrong value: %v", ns.Get("nope"))
		}
	})
}

func TestErrorValues(t *testing.T) {
	p := New("prog", "")
	p.Flag("verbose")
	_, err := p.Parse([]string{"--nope"})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("not an *Error: %#v", err)
	}
	if e.Kind != ErrUnknownOption {
		t.Errorf("wrong kind: %v", e.Kind)
	}
	if e.Token != "--nope" {
		t.Errorf("wrong token: %s", e.Token)
	}
	if fmt.Sprint(err) != "unknown option '--nope'" {
		t.Errorf("wrong message: %s", err)
	}
}
