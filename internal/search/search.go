// Package search turns the tagged tokens of one sentence into ranked
// candidate lookup strings. The generator has no grammar: it harvests every
// plausible entity name embedded in a noun phrase or comma/"and" list and
// ranks longer (more specific) candidates first.
package search

import (
	"errors"
	"sort"
	"strings"

	"tutorbot/internal/tokens"
)

// ErrNoNouns means the sentence contained no noun at all, so there is
// nothing to look up.
var ErrNoNouns = errors.New("no nouns found in sentence")

// ErrImproperSentence means an adjective was not followed by a noun or
// another adjective, which the generator cannot chunk.
var ErrImproperSentence = errors.New("improper sentence structure")

// Generate returns candidate lookup strings for a tagged sentence, ordered
// longest first (stable for equal lengths), with duplicates removed.
//
// isCommand, when non-nil, lets a registered command trigger phrase pre-empt
// content lookup: if the whole rendered sentence is a trigger, the result is
// that single phrase.
func Generate(toks []tokens.Token, isCommand func(string) bool) ([]string, error) {
	// Render everything the tagger recognized; an exact command phrase wins
	// before any chunking happens.
	var tagged []tokens.Token
	for _, t := range toks {
		if t.Tag != tokens.TagNone {
			tagged = append(tagged, t)
		}
	}
	full := strings.ToLower(tokens.Render(tagged))
	if isCommand != nil && isCommand(full) {
		return []string{full}, nil
	}

	hasNoun := false
	for _, t := range toks {
		if t.IsNoun() {
			hasNoun = true
			break
		}
	}
	if !hasNoun {
		return nil, ErrNoNouns
	}

	// Terminal punctuation never participates in joins.
	work := toks
	for len(work) > 0 && work[len(work)-1].IsTerminal() {
		work = work[:len(work)-1]
	}

	first, last := -1, -1
	for i, t := range work {
		if t.IsNoun() || t.IsAdjective() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, ErrNoNouns
	}
	span := work[first : last+1]

	// Every adjective must lead into a noun or another adjective.
	for i, t := range span {
		if !t.IsAdjective() {
			continue
		}
		if i+1 >= len(span) || !(span[i+1].IsNoun() || span[i+1].IsAdjective()) {
			return nil, ErrImproperSentence
		}
	}

	set := newCandidateSet()

	if wholeSpanQualifies(span) {
		set.add(tokens.Render(span))
	}

	// Chunk extraction: peel leading noun/adjective runs, then every
	// noun-bearing suffix of each run, skipping one separator between runs.
	rest := span
	for len(rest) > 0 {
		run := leadingRun(rest)
		if len(run) > 0 {
			set.add(tokens.Render(run))
			tail := run
			for nounCount(tail) > 1 {
				tail = tail[1:]
				set.add(tokens.Render(tail))
			}
		}
		skip := len(run) + 1
		if skip > len(rest) {
			break
		}
		rest = rest[skip:]
	}

	return set.ranked(), nil
}

// wholeSpanQualifies applies the list-shape rules to the full span: two
// adjacent commas disqualify it, and if the span contains commas or the word
// "and", the last such separator must be "and". A two-item list with no
// "and" never yields the whole-span candidate; chunking still recovers the
// individual items.
func wholeSpanQualifies(span []tokens.Token) bool {
	lastSepIsAnd := false
	sawSep := false
	prevComma := -2
	for i, t := range span {
		switch {
		case t.Text == ",":
			if i == prevComma+1 {
				return false
			}
			prevComma = i
			sawSep = true
			lastSepIsAnd = false
		case strings.EqualFold(t.Text, "and"):
			sawSep = true
			lastSepIsAnd = true
		}
	}
	if sawSep && !lastSepIsAnd {
		return false
	}
	return true
}

// leadingRun returns the longest prefix of noun/adjective tokens.
func leadingRun(toks []tokens.Token) []tokens.Token {
	for i, t := range toks {
		if !t.IsNoun() && !t.IsAdjective() {
			return toks[:i]
		}
	}
	return toks
}

func nounCount(toks []tokens.Token) int {
	n := 0
	for _, t := range toks {
		if t.IsNoun() {
			n++
		}
	}
	return n
}

// candidateSet keeps discovery order while enforcing set semantics.
type candidateSet struct {
	seen  map[string]bool
	order []string
}

func newCandidateSet() *candidateSet {
	return &candidateSet{seen: make(map[string]bool)}
}

func (s *candidateSet) add(candidate string) {
	candidate = strings.ToLower(candidate)
	if candidate == "" || s.seen[candidate] {
		return
	}
	s.seen[candidate] = true
	s.order = append(s.order, candidate)
}

// ranked returns the candidates sorted by descending length; equal lengths
// keep discovery order.
func (s *candidateSet) ranked() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
