package owoify

import (
	"sort"
	"sync"

	"github.com/dlclark/regexp2"
)

// Word is a single whitespace-delimited token together with every substring
// that a substitution has already produced inside it.
type Word struct {
	text     string
	produced map[string]struct{}
}

// NewWord creates a Word with an empty produced-substring memory
func NewWord(text string) *Word {
	return &Word{
		text:     text,
		produced: make(map[string]struct{}),
	}
}

// String returns the current text of the word
func (w *Word) String() string {
	return w.text
}

// Produced returns the remembered replacement strings in sorted order
func (w *Word) Produced() []string {
	out := make([]string, 0, len(w.produced))
	for s := range w.produced {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// replacer replaces every match of re in s and reports the text each match
// was replaced with.
type replacer func(re *regexp2.Regexp, s string) (string, []string)

// Replace substitutes every match of pattern with template. The template may
// reference capture groups as $1, $2 ...
func (w *Word) Replace(pattern *regexp2.Regexp, template string, allowReapply bool) *Word {
	return w.substitute(pattern, templateReplacer(template), allowReapply)
}

// ReplaceFunc substitutes every match of pattern with the result of eval
// called on the matched text.
func (w *Word) ReplaceFunc(pattern *regexp2.Regexp, eval func(match string) string, allowReapply bool) *Word {
	return w.substitute(pattern, funcReplacer(eval), allowReapply)
}

// ReplaceCaptures computes one replacement from the first two capture groups
// of pattern. The whole word has to match pattern, otherwise nothing happens.
func (w *Word) ReplaceCaptures(pattern *regexp2.Regexp, fn func(first, second string) string, allowReapply bool) *Word {
	if !matches(pattern, w.text) {
		return w
	}

	m, err := anchored(pattern).FindStringMatch(w.text)
	if err != nil || m == nil {
		return w
	}

	value := fn(groupText(m, 1), groupText(m, 2))
	return w.substitute(pattern, literalReplacer(value), allowReapply)
}

// substitute applies rep for pattern unless a previously produced substring
// would come out of the same replacement unchanged.
func (w *Word) substitute(pattern *regexp2.Regexp, rep replacer, allowReapply bool) *Word {
	return w.substituteChecked(pattern, rep, rep, allowReapply)
}

// substituteChecked is substitute with a separate replacer for the guard.
// check must not draw randomness.
func (w *Word) substituteChecked(pattern *regexp2.Regexp, rep, check replacer, allowReapply bool) *Word {
	if !allowReapply && w.containsProduced(pattern, check) {
		return w
	}

	if !matches(pattern, w.text) {
		return w
	}

	replaced, pieces := rep(pattern, w.text)
	if replaced == w.text {
		return w
	}

	for _, piece := range pieces {
		w.produced[piece] = struct{}{}
	}
	w.text = replaced

	return w
}

// containsProduced reports whether replacing pattern inside any produced
// substring leaves that substring as it is.
func (w *Word) containsProduced(pattern *regexp2.Regexp, rep replacer) bool {
	for s := range w.produced {
		if !matches(pattern, s) {
			continue
		}
		if replaced, _ := rep(pattern, s); replaced == s {
			return true
		}
	}
	return false
}

func templateReplacer(template string) replacer {
	return func(re *regexp2.Regexp, s string) (string, []string) {
		replaced, err := re.Replace(s, template, -1, -1)
		if err != nil {
			return s, nil
		}

		var pieces []string
		for _, match := range allMatches(re, s) {
			piece, err := re.Replace(match, template, -1, -1)
			if err != nil {
				continue
			}
			pieces = append(pieces, piece)
		}
		return replaced, pieces
	}
}

func funcReplacer(eval func(match string) string) replacer {
	return func(re *regexp2.Regexp, s string) (string, []string) {
		var pieces []string
		replaced, err := re.ReplaceFunc(s, func(m regexp2.Match) string {
			piece := eval(m.String())
			pieces = append(pieces, piece)
			return piece
		}, -1, -1)
		if err != nil {
			return s, nil
		}
		return replaced, pieces
	}
}

func literalReplacer(value string) replacer {
	return funcReplacer(func(string) string { return value })
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

func allMatches(re *regexp2.Regexp, s string) []string {
	var out []string
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	return out
}

func groupText(m *regexp2.Match, n int) string {
	if g := m.GroupByNumber(n); g != nil {
		return g.String()
	}
	return ""
}

var anchoredCache sync.Map

// anchored returns pattern wrapped so it only matches a whole string
func anchored(pattern *regexp2.Regexp) *regexp2.Regexp {
	key := pattern.String()
	if re, ok := anchoredCache.Load(key); ok {
		return re.(*regexp2.Regexp)
	}
	re := regexp2.MustCompile(`^(?:`+key+`)$`, regexp2.ECMAScript)
	actual, _ := anchoredCache.LoadOrStore(key, re)
	return actual.(*regexp2.Regexp)
}
