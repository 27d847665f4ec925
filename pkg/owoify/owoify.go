// Package owoify rewrites text into cute-speak by running every word through
// an ordered catalog of regular-expression substitutions.
package owoify

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	wordPattern  = compile(`\S+`)
	spacePattern = compile(`\s+`)
)

// Owoifier applies the rule catalog to text.
type Owoifier struct {
	picker  *Picker
	workers int
	logger  *zap.Logger
}

// Option configures an Owoifier
type Option func(*Owoifier)

// WithPicker sets the source of randomness for faces and vowel coins.
func WithPicker(p *Picker) Option {
	return func(o *Owoifier) {
		if p != nil {
			o.picker = p
		}
	}
}

// WithWorkers transforms up to n words concurrently. Values below 2 keep the
// pipeline sequential.
func WithWorkers(n int) Option {
	return func(o *Owoifier) {
		o.workers = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *Owoifier) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Owoifier. Without options it is sequential, silent and
// seeded from the operating system.
func New(opts ...Option) *Owoifier {
	o := &Owoifier{
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.picker == nil {
		o.picker = NewSeededPicker()
	}
	return o
}

var defaultOwoifier = New()

// Owoify transforms text at level using the process-wide default Owoifier.
func Owoify(text string, level Level) string {
	return defaultOwoifier.Owoify(text, level)
}

// Owoify splits text into words and whitespace, transforms every word on its
// own and puts the pieces back together in order.
func (o *Owoifier) Owoify(text string, level Level) string {
	start := time.Now()

	words := allMatches(wordPattern, text)
	spaces := allMatches(spacePattern, text)

	transformed, err := o.transformWords(words, level)
	if err != nil {
		o.logger.Error("Word transform failed", zap.Error(err))
		return text
	}

	var parts []string
	if startsWithSpace(text) {
		parts = interleave(spaces, transformed)
	} else {
		parts = interleave(transformed, spaces)
	}
	result := strings.Join(parts, "")

	o.logger.Debug("Text owoified",
		zap.Stringer("level", level),
		zap.Int("words", len(words)),
		zap.Int("input_bytes", len(text)),
		zap.Int("output_bytes", len(result)),
		zap.Duration("duration", time.Since(start)),
	)

	return result
}

// transformWords runs OwoifyWord over words, fanning out across the
// configured number of workers.
func (o *Owoifier) transformWords(words []string, level Level) ([]string, error) {
	out := make([]string, len(words))
	if o.workers <= 1 || len(words) <= 1 {
		for i, word := range words {
			out[i] = o.OwoifyWord(word, level)
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, word := range words {
		g.Go(func() error {
			out[i] = o.OwoifyWord(word, level)
			return nil
		})
	}
	return out, g.Wait()
}

// OwoifyWord runs a single token through the specific-word rules and every
// tier up to level.
func (o *Owoifier) OwoifyWord(token string, level Level) string {
	w := NewWord(token)
	for _, r := range SpecificWordRules {
		r.Apply(w, o.picker)
	}
	for _, tier := range RulesFor(level) {
		for _, r := range tier {
			r.Apply(w, o.picker)
		}
	}
	return w.String()
}

// interleave alternates elements of a and b starting with a, then appends
// whatever remains of the longer slice.
func interleave[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		out = append(out, a[i], b[i])
	}
	out = append(out, a[n:]...)
	out = append(out, b[n:]...)
	return out
}

func startsWithSpace(text string) bool {
	m, err := spacePattern.FindStringMatch(text)
	return err == nil && m != nil && m.Index == 0
}
