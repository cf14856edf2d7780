package argspec

import (
	"errors"
	"fmt"
	"os"

	"github.com/DavidGamba/go-argspec/internal/help"
	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/text"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// HelpSection - Indicates what portion of the help to return.
type HelpSection int

// Help Output Types
const (
	helpDefaultName HelpSection = iota
	HelpName
	HelpUsage
	HelpArgumentList
	HelpOptionList
	HelpCommandList
)

// Usage - Returns the usage line, wrapped at the detected terminal width.
// Every spec and group renders as one atomic segment: a display label is
// never split or re-parsed, no matter what characters it contains.
func (p *Parser) Usage() string {
	return p.registry.usage()
}

func (r *registry) usage() string {
	return help.Usage(r.scriptName(), r.synopsisSegments(), outputWidth())
}

// Help - Default help string that is composed of the name, usage and the
// argument, option and command lists. Can be called with a list of
// HelpSection types to limit the output.
func (p *Parser) Help(sections ...HelpSection) string {
	if len(sections) == 0 {
		sections = []HelpSection{helpDefaultName, HelpUsage, HelpArgumentList, HelpOptionList, HelpCommandList}
	}
	r := p.registry
	txt := ""
	for _, section := range sections {
		switch section {
		case HelpName:
			txt += help.Name(r.scriptName(), r.description)
		case helpDefaultName:
			if r.description != "" {
				txt += help.Name(r.scriptName(), r.description)
				txt += "\n"
			}
		case HelpUsage:
			txt += p.Usage()
		case HelpArgumentList:
			if t := help.ArgumentList(r.listedPositionals()); t != "" {
				txt += "\n" + t
			}
		case HelpOptionList:
			if t := help.OptionList(r.ungroupedOptions()); t != "" {
				txt += "\n" + t
			}
			for _, g := range r.groups {
				if g.title == "" {
					continue
				}
				if t := help.GroupList(r.displayGroup(g)); t != "" {
					txt += "\n" + t
				}
			}
		case HelpCommandList:
			m := map[string]string{}
			for name, cmd := range r.commands {
				m[name] = cmd.registry.description
			}
			if t := help.CommandList(m); t != "" {
				txt += "\n" + t
			}
		}
	}
	return txt
}

// PrintError - Writes the usage line followed by the error to Writer. An
// error raised inside a dispatched command renders that command's usage
// line, not the top level one. The error prefix is colored when the writer
// is a terminal. Pair it with a non zero exit:
//
//	ns, err := p.Parse(os.Args[1:])
//	if err != nil {
//		p.PrintError(err)
//		os.Exit(2)
//	}
func (p *Parser) PrintError(err error) {
	reg := p.registry
	var e *Error
	if errors.As(err, &e) && e.reg != nil {
		reg = e.reg
	}
	prefix := text.ErrorPrefix
	if f, ok := Writer.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		prefix = color.New(color.FgRed).Sprint(prefix)
	}
	fmt.Fprint(Writer, reg.usage())
	fmt.Fprintf(Writer, "%s: %s %s\n", reg.scriptName(), prefix, err)
}

// outputWidth - Terminal width of the output writer, or the default when the
// writer is not a terminal.
func outputWidth() int {
	if f, ok := Writer.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return help.DefaultWidth
}

// groupedSpecs - Specs that render inside a titled section instead of the
// general lists. Members of an untitled exclusive group stay in the general
// lists, exclusivity alone is not a display concern.
func (r *registry) groupedSpecs() map[*spec.Spec]bool {
	out := map[*spec.Spec]bool{}
	for _, g := range r.groups {
		if g.title == "" && g.section == nil {
			continue
		}
		for _, s := range g.members {
			out[s] = true
		}
	}
	return out
}

func (r *registry) ungroupedOptions() []*spec.Spec {
	grouped := r.groupedSpecs()
	out := []*spec.Spec{}
	for _, s := range r.specs {
		if !s.IsPositional() && !grouped[s] {
			out = append(out, s)
		}
	}
	return out
}

func (r *registry) listedPositionals() []*spec.Spec {
	grouped := r.groupedSpecs()
	out := []*spec.Spec{}
	for _, s := range r.specs {
		if s.IsPositional() && s.Arity.Kind != spec.KindSubparser && !grouped[s] {
			out = append(out, s)
		}
	}
	return out
}

// displayGroup - Display model for a titled group, folding in the members of
// any exclusive group nested under it.
func (r *registry) displayGroup(g *Group) help.Group {
	members := append([]*spec.Spec{}, g.members...)
	for _, nested := range r.groups {
		if nested.section == g {
			members = append(members, nested.members...)
		}
	}
	return help.Group{
		Title:       g.title,
		Description: g.description,
		Exclusive:   g.exclusive,
		Required:    g.required,
		Specs:       members,
	}
}

// synopsisSegments - Atomic usage segments: options first in declaration
// order with exclusive groups rendered as single segments, then positionals
// in declaration order, the subparser spec last as the command selector.
func (r *registry) synopsisSegments() []string {
	inExclusive := map[*spec.Spec]*Group{}
	for _, g := range r.groups {
		if !g.exclusive {
			continue
		}
		for _, s := range g.members {
			inExclusive[s] = g
		}
	}
	rendered := map[*Group]bool{}
	segments := []string{}
	for _, s := range r.specs {
		if s.IsPositional() {
			continue
		}
		if g, ok := inExclusive[s]; ok {
			if !rendered[g] {
				rendered[g] = true
				segments = append(segments, help.GroupSynopsis(r.displayGroupBare(g)))
			}
			continue
		}
		segments = append(segments, help.OptionSynopsis(s))
	}
	for _, s := range r.specs {
		if !s.IsPositional() {
			continue
		}
		if s.Arity.Kind == spec.KindSubparser {
			segments = append(segments, help.CommandsSynopsis(r.commandOrder))
			continue
		}
		if g, ok := inExclusive[s]; ok {
			if !rendered[g] {
				rendered[g] = true
				segments = append(segments, help.GroupSynopsis(r.displayGroupBare(g)))
			}
			continue
		}
		segments = append(segments, help.PositionalSynopsis(s))
	}
	return segments
}

func (r *registry) displayGroupBare(g *Group) help.Group {
	return help.Group{
		Exclusive: g.exclusive,
		Required:  g.required,
		Specs:     g.members,
	}
}
