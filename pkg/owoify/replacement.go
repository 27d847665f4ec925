package owoify

import "github.com/dlclark/regexp2"

// Replacement describes what a matched span is rewritten to. Use Template,
// PerMatch, PerCall or Captures to build one.
type Replacement struct {
	kind     replacementKind
	template string
	draw     func(p *Picker) string
	check    string
	captures func(first, second string) string
}

type replacementKind int

const (
	kindTemplate replacementKind = iota
	kindPerMatch
	kindPerCall
	kindCaptures
)

// Template replaces each match with template, expanding $n back-references.
func Template(template string) Replacement {
	return Replacement{kind: kindTemplate, template: template}
}

// PerMatch draws a fresh replacement for every individual match. check is the
// value the reapply guard tests produced substrings against, so the guard
// never consumes draws.
func PerMatch(check string, fn func(p *Picker) string) Replacement {
	return Replacement{kind: kindPerMatch, draw: fn, check: check}
}

// PerCall draws one replacement per application and uses it for every match.
func PerCall(fn func(p *Picker) string) Replacement {
	return Replacement{kind: kindPerCall, draw: fn}
}

// Captures builds the replacement from the first two groups of a pattern
// that has to match the whole word.
func Captures(fn func(first, second string) string) Replacement {
	return Replacement{kind: kindCaptures, captures: fn}
}

// Substitution is one pattern and what its matches become.
type Substitution struct {
	Pattern      *regexp2.Regexp
	Replacement  Replacement
	AllowReapply bool
}

// Rule is a named, ordered group of substitutions.
type Rule struct {
	Name          string
	Substitutions []Substitution
}

// Apply runs every substitution of the rule against w in order.
func (r Rule) Apply(w *Word, p *Picker) *Word {
	for _, s := range r.Substitutions {
		w.Apply(s, p)
	}
	return w
}

// Apply runs a single substitution against the word, drawing randomness from p
// when the replacement needs it.
func (w *Word) Apply(s Substitution, p *Picker) *Word {
	rep := s.Replacement
	switch rep.kind {
	case kindPerMatch:
		draw := funcReplacer(func(string) string { return rep.draw(p) })
		return w.substituteChecked(s.Pattern, draw, literalReplacer(rep.check), s.AllowReapply)
	case kindPerCall:
		value := rep.draw(p)
		return w.ReplaceFunc(s.Pattern, func(string) string { return value }, s.AllowReapply)
	case kindCaptures:
		return w.ReplaceCaptures(s.Pattern, rep.captures, s.AllowReapply)
	default:
		return w.Replace(s.Pattern, rep.template, s.AllowReapply)
	}
}

// sub compiles pattern as an ECMAScript expression with a template replacement.
func sub(pattern, template string) Substitution {
	return Substitution{Pattern: compile(pattern), Replacement: Template(template)}
}

func subWith(pattern string, rep Replacement) Substitution {
	return Substitution{Pattern: compile(pattern), Replacement: rep}
}

func compile(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.ECMAScript)
}

func rule(name string, subs ...Substitution) Rule {
	return Rule{Name: name, Substitutions: subs}
}
